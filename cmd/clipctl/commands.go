package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newPipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline <url>",
		Short: "Start a clip pipeline for a video link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, _ := cmd.Flags().GetString("language")
			category, _ := cmd.Flags().GetString("category")
			campaignId, _ := cmd.Flags().GetInt64("campaign")
			count, _ := cmd.Flags().GetInt("count")
			wait, _ := cmd.Flags().GetBool("wait")

			client := newAPIClient(cmd)
			var data struct {
				TaskId string `json:"task_id"`
			}
			err := client.post("/api/pipeline", map[string]any{
				"url":          args[0],
				"language":     language,
				"category":     category,
				"campaign_id":  campaignId,
				"target_count": count,
			}, &data)
			if err != nil {
				return err
			}
			cmd.Println("task:", data.TaskId)

			if !wait {
				return nil
			}
			return waitForTask(cmd, client, data.TaskId)
		},
	}
	cmd.Flags().String("language", "", "Transcription language override")
	cmd.Flags().String("category", "", "Headline category")
	cmd.Flags().Int64("campaign", 0, "Campaign id to attach clips to")
	cmd.Flags().Int("count", 0, "Target number of clips")
	cmd.Flags().Bool("wait", false, "Poll until the task finishes")
	return cmd
}

type taskStatus struct {
	TaskId         string `json:"task_id"`
	Title          string `json:"title"`
	Status         uint8  `json:"status"`
	StatusMsg      string `json:"status_msg"`
	FailReason     string `json:"fail_reason"`
	ProcessPercent uint8  `json:"process_percent"`
	Clips          []struct {
		Seq      int     `json:"seq"`
		StartSec float64 `json:"start_sec"`
		EndSec   float64 `json:"end_sec"`
		FilePath string  `json:"file_path"`
		Headline string  `json:"headline"`
	} `json:"clips"`
}

func waitForTask(cmd *cobra.Command, client *apiClient, taskId string) error {
	for {
		var task taskStatus
		if err := client.get("/api/task", map[string]string{"taskId": taskId}, &task); err != nil {
			return err
		}

		cmd.Printf("%3d%%  %s\n", task.ProcessPercent, task.StatusMsg)

		switch task.Status {
		case 2: // completed
			for _, clip := range task.Clips {
				cmd.Printf("clip %d  [%.0fs-%.0fs]  %s  %s\n",
					clip.Seq, clip.StartSec, clip.EndSec, clip.FilePath, clip.Headline)
			}
			return nil
		case 3: // failed
			return fmt.Errorf("task failed: %s", task.FailReason)
		}
		time.Sleep(2 * time.Second)
	}
}

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task <taskId>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(cmd)

			if remove, _ := cmd.Flags().GetBool("delete"); remove {
				if err := client.delete("/api/task/" + args[0]); err != nil {
					return err
				}
				cmd.Println("deleted")
				return nil
			}

			var task taskStatus
			if err := client.get("/api/task", map[string]string{"taskId": args[0]}, &task); err != nil {
				return err
			}
			return printJSON(cmd, task)
		},
	}
	cmd.Flags().Bool("delete", false, "Delete the task and its files")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recent tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(cmd)
			var tasks json.RawMessage
			if err := client.get("/api/history", nil, &tasks); err != nil {
				return err
			}
			return printJSON(cmd, tasks)
		},
	}
}

func newCampaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage clip campaigns",
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			influencer, _ := cmd.Flags().GetString("influencer")
			platformUrl, _ := cmd.Flags().GetString("url")
			pay, _ := cmd.Flags().GetFloat64("pay")
			minViews, _ := cmd.Flags().GetInt64("min-views")

			client := newAPIClient(cmd)
			var data json.RawMessage
			err := client.post("/api/campaign", map[string]any{
				"name":             args[0],
				"influencer":       influencer,
				"platform_url":     platformUrl,
				"pay_per_1k_views": pay,
				"min_views":        minViews,
			}, &data)
			if err != nil {
				return err
			}
			return printJSON(cmd, data)
		},
	}
	create.Flags().String("influencer", "", "Twitch login of the influencer")
	create.Flags().String("url", "", "Campaign platform URL")
	create.Flags().Float64("pay", 0, "Pay per 1k views")
	create.Flags().Int64("min-views", 0, "Minimum views for payout")

	list := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			query := map[string]string{}
			if all {
				query["all"] = "true"
			}

			client := newAPIClient(cmd)
			var data json.RawMessage
			if err := client.get("/api/campaign", query, &data); err != nil {
				return err
			}
			return printJSON(cmd, data)
		},
	}
	list.Flags().Bool("all", false, "Include archived campaigns")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one campaign with clip counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(cmd)
			var data json.RawMessage
			if err := client.get("/api/campaign/"+args[0], nil, &data); err != nil {
				return err
			}
			return printJSON(cmd, data)
		},
	}

	cmd.AddCommand(create, list, show)
	return cmd
}

func newClipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clip",
		Short: "Record where clips were posted",
	}

	link := &cobra.Command{
		Use:   "link <clipId> <platform> <url>",
		Short: "Store the published URL of a clip",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(cmd)
			err := client.post("/api/clip/"+args[0]+"/link", map[string]any{
				"platform": args[1],
				"url":      args[2],
			}, nil)
			if err != nil {
				return err
			}
			cmd.Println("link recorded")
			return nil
		},
	}

	submit := &cobra.Command{
		Use:   "submit <clipId>",
		Short: "Mark a clip as submitted to its campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(cmd)
			if err := client.post("/api/clip/"+args[0]+"/submit", nil, nil); err != nil {
				return err
			}
			cmd.Println("submitted")
			return nil
		},
	}

	cmd.AddCommand(link, submit)
	return cmd
}

func newTwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "twitch",
		Short: "Twitch clip intake",
	}

	clips := &cobra.Command{
		Use:   "clips <channel>",
		Short: "List a channel's top clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			first, _ := cmd.Flags().GetInt("first")

			client := newAPIClient(cmd)
			var data json.RawMessage
			err := client.get("/api/twitch/clips", map[string]string{
				"channel": args[0],
				"days":    fmt.Sprint(days),
				"first":   fmt.Sprint(first),
			}, &data)
			if err != nil {
				return err
			}
			return printJSON(cmd, data)
		},
	}
	clips.Flags().Int("days", 7, "Lookback window in days")
	clips.Flags().Int("first", 10, "Number of clips to list")

	intake := &cobra.Command{
		Use:   "intake <channel>",
		Short: "Start pipelines for a channel's new top clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			first, _ := cmd.Flags().GetInt("first")
			campaignId, _ := cmd.Flags().GetInt64("campaign")
			category, _ := cmd.Flags().GetString("category")

			client := newAPIClient(cmd)
			var data struct {
				Channel string `json:"channel"`
				Started int    `json:"started"`
			}
			err := client.post("/api/twitch/intake", map[string]any{
				"channel":     args[0],
				"days":        days,
				"first":       first,
				"campaign_id": campaignId,
				"category":    category,
			}, &data)
			if err != nil {
				return err
			}
			cmd.Printf("started %d pipelines for %s\n", data.Started, data.Channel)
			return nil
		},
	}
	intake.Flags().Int("days", 7, "Lookback window in days")
	intake.Flags().Int("first", 10, "Number of clips to consider")
	intake.Flags().Uint("campaign", 0, "Campaign id to attach clips to")
	intake.Flags().String("category", "", "Headline category")

	cmd.AddCommand(clips, intake)
	return cmd
}
