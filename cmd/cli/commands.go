package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	playersCmd.Flags().String("position", "", "Only list players at this position")
	playersCmd.Flags().String("school", "", "Only list players from this school")
	playersCmd.Flags().String("region", "", "Only list players from this region")
	playersCmd.Flags().String("sort-by", "name", "Sort key: name, ppg, rpg, apg or seed")
	playersCmd.Flags().String("order", "asc", "Sort order: asc or desc")
	addParticipantCmd.Flags().String("email", "", "Email of the participant")
	pickCmd.Flags().Int("position", 0, "Draft position; the next free position when omitted")

	participantsCmd.AddCommand(addParticipantCmd, removeParticipantCmd, scoreCmd)
	rootCmd.AddCommand(
		healthCmd,
		metricsCmd,
		playersCmd,
		participantsCmd,
		pickCmd,
		unpickCmd,
		resetCmd,
		boardCmd,
		leaderboardCmd,
		gamesCmd,
		refreshCmd,
		refreshScoresCmd,
	)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List tournament players",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		for flag, param := range map[string]string{
			"position": "position",
			"school":   "school",
			"region":   "region",
			"sort-by":  "sort_by",
			"order":    "order",
		} {
			if v, _ := cmd.Flags().GetString(flag); v != "" {
				q.Set(param, v)
			}
		}
		return performRequest(http.MethodGet, "/api/players?"+q.Encode(), nil)
	},
}

var participantsCmd = &cobra.Command{
	Use:   "participants",
	Short: "List draft participants",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/participants", nil)
	},
}

var addParticipantCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a draft participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		return performRequest(http.MethodPost, "/api/participants", map[string]string{"name": args[0], "email": email})
	},
}

var removeParticipantCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a participant and their picks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/api/participants/"+url.PathEscape(args[0]), nil)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score ID",
	Short: "Show the score of a participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/participants/"+url.PathEscape(args[0])+"/score", nil)
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick PARTICIPANT_ID PLAYER_ID",
	Short: "Draft a player for a participant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		playerID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid player id %q: %w", args[1], err)
		}
		body := map[string]any{"participant_id": args[0], "player_id": playerID}
		if pos, _ := cmd.Flags().GetInt("position"); pos > 0 {
			body["draft_position"] = pos
		}
		return performRequest(http.MethodPost, "/api/draft_picks", body)
	},
}

var unpickCmd = &cobra.Command{
	Use:   "unpick PICK_ID",
	Short: "Delete a draft pick",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/api/draft_picks/"+url.PathEscape(args[0]), nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every draft pick",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/draft_picks/reset", nil)
	},
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the draft board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/draft_board", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the participant leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/leaderboard", nil)
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List tournament games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/games", nil)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run a full tournament data refresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/update_data", nil)
	},
}

var refreshScoresCmd = &cobra.Command{
	Use:   "refresh-scores",
	Short: "Refresh game scores and player stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/update_game_scores", nil)
	},
}

func performRequest(method, endpoint string, payload any) error {
	target := host + endpoint
	if dryRun {
		target = withQuery(target, "dry_run", "true")
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
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

func withQuery(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
