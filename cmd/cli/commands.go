package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

var (
	dryRun     bool
	detailed   bool
	deleteCode string
	adminToken string
	outputFile string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Ask the server not to persist or notify anything")

	leaderboardCmd.Flags().BoolVar(&detailed, "detailed", false, "Include sets won and points ratio")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "leaderboard.xlsx", "File to write the workbook to")
	tokenCmd.Flags().StringVar(&deleteCode, "code", "", "The confirmation code")
	clearCmd.Flags().StringVar(&deleteCode, "code", "", "The confirmation code")
	clearCmd.Flags().StringVar(&adminToken, "token", "", "An admin token issued by the token command")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(postLeaderboardCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil, nil)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams [id]",
	Short: "List the registered teams, or show one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performRequest(http.MethodGet, "/teams/"+url.PathEscape(args[0]), nil, nil)
		}
		return performRequest(http.MethodGet, "/teams", nil, nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <name> <members>",
	Short: "Register a team; members are comma separated",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{"name": args[0], "members": args[1]}
		return performRequest(http.MethodPost, "/teams", body, nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the recorded matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches", nil, nil)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <match.json>",
	Short: "Record a match read from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read match file: %w", err)
		}
		var entry json.RawMessage
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("match file is not valid JSON: %w", err)
		}
		return performRequest(http.MethodPost, "/matches", entry, nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/leaderboard"
		if detailed {
			endpoint += "?detailed=true"
		}
		return performRequest(http.MethodGet, endpoint, nil, nil)
	},
}

var teamCmd = &cobra.Command{
	Use:   "team <name>",
	Short: "Show the stats of one team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/leaderboard/team?name="+url.QueryEscape(args[0]), nil, nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the leaderboard as an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(host + "/leaderboard.xlsx")
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outputFile, err)
		}
		defer f.Close()
		if _, err := io.Copy(f, resp.Body); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		fmt.Printf("Leaderboard written to %s\n", outputFile)
		return nil
	},
}

var postLeaderboardCmd = &cobra.Command{
	Use:   "post-leaderboard",
	Short: "Post the current leaderboard to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/leaderboard/post", nil, nil)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Exchange the confirmation code for a short-lived admin token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/admin/token", map[string]string{"code": deleteCode}, nil)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded match",
	RunE: func(cmd *cobra.Command, args []string) error {
		headers := map[string]string{}
		if deleteCode != "" {
			headers["X-Delete-Code"] = deleteCode
		}
		if adminToken != "" {
			headers["Authorization"] = "Bearer " + adminToken
		}
		return performRequest(http.MethodDelete, "/matches", nil, headers)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil, nil)
	},
}

func performRequest(method, endpoint string, body any, headers map[string]string) error {
	target := host + endpoint
	if dryRun {
		target = withQuery(target, "dry_run", "true")
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}

func withQuery(target, key, value string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
