package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/core"
	"github.com/sevigo/livebundle-github/internal/db"
	"github.com/sevigo/livebundle-github/internal/gitutil"
	"github.com/sevigo/livebundle-github/internal/storage"
)

var jobsOpts struct {
	limit  int
	output string
	pr     string
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the most recent pull request jobs",
	Long: `List the most recent pull request jobs.

Examples:
  livebundle-cli jobs --limit 50
  livebundle-cli jobs --pr foo/bar#42 --output yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbCfg := config.LoadDBConfig()
		conn, err := db.Connect(&dbCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		store := storage.NewStore(conn)
		if jobsOpts.pr != "" {
			return showLatestJob(cmd.Context(), store, jobsOpts.pr, jobsOpts.output, os.Stdout)
		}

		recs, err := store.ListRecentJobs(cmd.Context(), jobsOpts.limit)
		if err != nil {
			return fmt.Errorf("failed to retrieve jobs: %w", err)
		}
		return writeJobs(os.Stdout, recs, jobsOpts.output)
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	jobsCmd.Flags().IntVarP(&jobsOpts.limit, "limit", "l", 20, "Maximum number of jobs to list")
	jobsCmd.Flags().StringVar(&jobsOpts.output, "output", "table", "Output format: table or yaml")
	jobsCmd.Flags().StringVar(&jobsOpts.pr, "pr", "", "Show the latest job of one pull request (URL or owner/repo#N)")
	rootCmd.AddCommand(jobsCmd)
}

// showLatestJob prints the newest job recorded for the pull request ref points at.
func showLatestJob(ctx context.Context, store storage.Store, ref, output string, w io.Writer) error {
	pr, err := gitutil.ParsePullRequestRef(ref)
	if err != nil {
		return err
	}

	rec, err := store.GetLatestJobForPR(ctx, pr.Owner, pr.Repo, pr.Number)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(w, "No jobs recorded for %s/%s#%d.\n", pr.Owner, pr.Repo, pr.Number)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve job: %w", err)
	}
	return writeJobs(w, []*core.JobRecord{rec}, output)
}

func writeJobs(w io.Writer, recs []*core.JobRecord, output string) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(recs)
	case "table":
		return printJobsTable(w, recs)
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

func printJobsTable(out io.Writer, recs []*core.JobRecord) error {
	if len(recs) == 0 {
		fmt.Fprintln(out, "No jobs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tPULL REQUEST\tHEAD\tSTATUS\tUPDATED")
	for _, r := range recs {
		fmt.Fprintf(w, "%d\t%s/%s#%d\t%s\t%s\t%s\n",
			r.ID,
			r.Owner, r.Repo, r.PRNumber,
			shortSHA(r.HeadSHA),
			statusColor(r.Status).Sprint(r.Status),
			r.UpdatedAt.Format(time.RFC822),
		)
	}
	return w.Flush()
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	if sha == "" {
		return "-"
	}
	return sha
}

func statusColor(s core.JobStatus) *color.Color {
	switch s {
	case core.JobStatusDone:
		return successColor
	case core.JobStatusFailed:
		return errorColor
	default:
		return color.New(color.FgYellow)
	}
}
