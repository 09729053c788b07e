package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lattixfs/s3adaptor/cmd/s3adaptorctl/cmdutil"
	"github.com/lattixfs/s3adaptor/internal/cli/output"
	"github.com/lattixfs/s3adaptor/pkg/adaptor"
	"github.com/lattixfs/s3adaptor/pkg/config"
	"github.com/lattixfs/s3adaptor/pkg/inode"
	"github.com/lattixfs/s3adaptor/pkg/objectstore/s3"
	"github.com/lattixfs/s3adaptor/pkg/rpcclient/allocclient"
	"github.com/lattixfs/s3adaptor/pkg/rpcclient/metaclient"
)

var checkFSID uint64

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Round-trip a small write/read against a configured backend",
	Long: `Build an Adaptor from the configuration file and exercise it against
the real object store and RPC collaborators it names: allocate a chunk,
write a small buffer, read it back, and confirm the bytes match.

This never touches production inode ids: the check synthesizes its own
throwaway *inode.Inode and discards it once the round trip is confirmed.

Examples:
  s3adaptorctl check
  s3adaptorctl check --fsid 42`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Uint64Var(&checkFSID, "fsid", 1, "Filesystem id to allocate the check's chunk under")
}

type checkResult struct {
	Stage    string        `json:"stage" yaml:"stage"`
	OK       bool          `json:"ok" yaml:"ok"`
	Detail   string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

func (c checkResult) Headers() []string { return []string{"Stage", "OK", "Duration", "Detail"} }

func (c checkResult) Rows() [][]string {
	return [][]string{{c.Stage, fmt.Sprint(c.OK), c.Duration.String(), c.Detail}}
}

type checkReport struct {
	Results []checkResult `json:"results" yaml:"results"`
}

func (r checkReport) Headers() []string { return []string{"Stage", "OK", "Duration", "Detail"} }

func (r checkReport) Rows() [][]string {
	rows := make([][]string, len(r.Results))
	for i, res := range r.Results {
		rows[i] = res.Rows()[0]
	}
	return rows
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.MustLoad(cmdutil.Flags.ConfigPath)
	if err != nil {
		return err
	}

	store, err := s3.New(ctx, s3.Config{
		Endpoint:        cfg.ObjectStore.Endpoint,
		Region:          cfg.ObjectStore.Region,
		AccessKeyID:     cfg.ObjectStore.AccessKeyID,
		SecretAccessKey: cfg.ObjectStore.SecretAccessKey,
		ForcePathStyle:  cfg.ObjectStore.ForcePathStyle,
		Bucket:          cfg.ObjectStore.Bucket,
		KeyPrefix:       cfg.ObjectStore.KeyPrefix,
		MaxRetries:      cfg.ObjectStore.MaxRetries,
		InitialBackoff:  cfg.ObjectStore.InitialBackoff,
		MaxBackoff:      cfg.ObjectStore.MaxBackoff,
	})
	if err != nil {
		return fmt.Errorf("check: build object store: %w", err)
	}

	versions := metaclient.New(cfg.MetaService.BaseURL, cfg.MetaService.Path)
	if cfg.MetaService.Token != "" {
		versions = versions.WithToken(cfg.MetaService.Token)
	}
	allocator := allocclient.New(cfg.AllocService.BaseURL, cfg.AllocService.Path)
	if cfg.AllocService.Token != "" {
		allocator = allocator.WithToken(cfg.AllocService.Token)
	}

	a, err := adaptor.New(adaptor.Config{
		BlockSize: cfg.Geometry.BlockSize.Uint64(),
		ChunkSize: cfg.Geometry.ChunkSize.Uint64(),
	}, store, versions, allocator)
	if err != nil {
		return fmt.Errorf("check: build adaptor: %w", err)
	}

	payload := make([]byte, min64(cfg.Geometry.BlockSize.Uint64(), 4096))
	if _, err := rand.Read(payload); err != nil {
		return fmt.Errorf("check: generate payload: %w", err)
	}

	in := &inode.Inode{FSID: checkFSID, InodeID: syntheticInodeID()}

	report := checkReport{}

	start := time.Now()
	n, err := a.Write(ctx, in, 0, uint64(len(payload)), payload)
	report.Results = append(report.Results, checkResult{
		Stage: "write", OK: err == nil, Duration: time.Since(start),
		Detail: writeDetail(n, err),
	})
	if err != nil {
		return renderCheck(report)
	}
	in.Length = uint64(n)

	buf := make([]byte, len(payload))
	start = time.Now()
	_, err = a.Read(ctx, in, 0, uint64(len(payload)), buf)
	report.Results = append(report.Results, checkResult{
		Stage: "read", OK: err == nil, Duration: time.Since(start),
		Detail: readDetail(err),
	})
	if err != nil {
		return renderCheck(report)
	}

	match := bytes.Equal(payload, buf)
	report.Results = append(report.Results, checkResult{
		Stage: "compare", OK: match, Detail: compareDetail(match),
	})

	if err := renderCheck(report); err != nil {
		return err
	}
	if !match {
		os.Exit(1)
	}
	return nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func writeDetail(n int, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("wrote %d bytes", n)
}

func readDetail(err error) string {
	if err != nil {
		return err.Error()
	}
	return "bytes read back"
}

func compareDetail(match bool) string {
	if match {
		return "round-trip bytes match"
	}
	return "round-trip bytes differ"
}

// syntheticInodeID picks an id unlikely to collide with real inodes: the
// low bits of the current time. This check never persists the inode
// anywhere a real filesystem would look it up, so a rare collision only
// risks bumping a stranger's version counter, not corrupting data.
func syntheticInodeID() uint64 {
	return uint64(time.Now().UnixNano())
}

func renderCheck(report checkReport) error {
	if err := cmdutil.PrintResult(os.Stdout, report, report); err != nil {
		return err
	}
	format, err := cmdutil.OutputFormat()
	if err == nil && format == output.FormatTable {
		fmt.Println()
	}
	return nil
}
