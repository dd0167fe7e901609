package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the configured LLM endpoint is reachable",
	Long: `Doctor checks the health of the coder agent's transport: whether an
endpoint is configured and whether it responds. It never touches the
install-and-repair core itself.`,
	RunE: runDoctor,
}

var doctorQuiet bool

func init() {
	doctorCmd.Flags().BoolVarP(&doctorQuiet, "quiet", "q", false, "print results without decoration, for CI/scripts")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorIssue describes one detected problem.
type DoctorIssue struct {
	Message string `json:"message"`
}

// DoctorOutput is doctor's structured result.
type DoctorOutput struct {
	Healthy    bool          `json:"healthy"`
	IssueCount int           `json:"issue_count"`
	Issues     []DoctorIssue `json:"issues,omitempty"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var issues []DoctorIssue

	if cfg.LLM.Endpoint == "" {
		issues = append(issues, DoctorIssue{Message: "AGENTFORGE_LLM_ENDPOINT is not configured"})
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.LLM.Endpoint, nil)
		if err != nil {
			issues = append(issues, DoctorIssue{Message: fmt.Sprintf("invalid endpoint: %s", err)})
		} else if _, err := http.DefaultClient.Do(req); err != nil {
			issues = append(issues, DoctorIssue{Message: fmt.Sprintf("endpoint unreachable: %s", err)})
		}
	}

	report := DoctorOutput{
		Healthy:    len(issues) == 0,
		IssueCount: len(issues),
		Issues:     issues,
	}

	out := cmd.OutOrStdout()
	if doctorQuiet {
		enc := json.NewEncoder(out)
		return enc.Encode(report)
	}

	if report.Healthy {
		fmt.Fprintln(out, "healthy")
		return nil
	}
	fmt.Fprintf(out, "%d issue(s) found:\n", report.IssueCount)
	for _, issue := range report.Issues {
		fmt.Fprintf(out, "  - %s\n", issue.Message)
	}
	return nil
}
