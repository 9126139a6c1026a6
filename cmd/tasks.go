package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/carelfelix2/scrapper/internal/api"
	"github.com/carelfelix2/scrapper/internal/models"
	"github.com/carelfelix2/scrapper/internal/watch"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage scraping tasks",
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new scraping task",
	RunE:  runTasksCreate,
}

var tasksGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksGet,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scraping tasks",
	RunE:  runTasksList,
}

var tasksWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the task list and show live status until interrupted",
	RunE:  runTasksWatch,
}

func init() {
	tasksCreateCmd.Flags().String("platform", "", "Target platform: shopee, tokopedia, tiktok_shop")
	tasksCreateCmd.Flags().String("type", models.TaskTypeKeywordSearch, "Task type: keyword_search, url_scrape")
	tasksCreateCmd.Flags().String("keyword", "", "Search keyword (keyword_search tasks)")
	tasksCreateCmd.Flags().String("url", "", "Target URL (all other task types)")
	tasksCreateCmd.MarkFlagRequired("platform")

	tasksListCmd.Flags().Int("skip", 0, "Offset into the task list")
	tasksListCmd.Flags().Int("limit", 10, "Tasks per page")
	tasksListCmd.Flags().String("format", "table", "Output format: json, table")

	tasksWatchCmd.Flags().Int("limit", 10, "Tasks to watch")

	tasksCmd.AddCommand(tasksCreateCmd, tasksGetCmd, tasksListCmd, tasksWatchCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runTasksCreate(cmd *cobra.Command, args []string) error {
	platformName, _ := cmd.Flags().GetString("platform")
	taskType, _ := cmd.Flags().GetString("type")
	keyword, _ := cmd.Flags().GetString("keyword")
	rawURL, _ := cmd.Flags().GetString("url")

	platform := models.Platform(platformName)
	if !platform.Valid() {
		return fmt.Errorf("unknown platform %q (want one of %v)", platformName, models.Platforms())
	}

	value := rawURL
	if taskType == models.TaskTypeKeywordSearch {
		value = keyword
		if value == "" {
			return fmt.Errorf("--keyword is required for %s tasks", models.TaskTypeKeywordSearch)
		}
	} else if value == "" {
		return fmt.Errorf("--url is required for %s tasks", taskType)
	}

	_, client := buildClient()
	task, err := client.CreateTask(cmd.Context(), platform, taskType, models.TaskInput(taskType, value))
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task %d created (%s on %s, status %s)\n", task.ID, task.TaskType, task.Platform, task.Status)
	return nil
}

func runTasksGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("task id must be a number: %q", args[0])
	}

	_, client := buildClient()
	task, err := client.GetTask(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(task)
}

func runTasksList(cmd *cobra.Command, args []string) error {
	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	_, client := buildClient()
	page, err := client.ListTasks(cmd.Context(), skip, limit)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	default:
		printTasksTable(cmd.OutOrStdout(), page.Items)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d tasks\n", len(page.Items), page.Total)
		return nil
	}
}

func runTasksWatch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	_, client := buildClient()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := watch.NewPoller(func(ctx context.Context) (*api.Page[models.ScrapingTask], error) {
		return client.ListTasks(ctx, 0, limit)
	}, cfg.PollInterval)
	defer poller.Close()

	updates := make(chan watch.State[*api.Page[models.ScrapingTask]], 8)
	poller.OnChange(func(s watch.State[*api.Page[models.ScrapingTask]]) {
		select {
		case updates <- s:
		default:
		}
	})

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching tasks every %s (Ctrl-C to stop)...\n", cfg.PollInterval)
	poller.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-updates:
			if s.Loading {
				continue
			}
			if s.Err != nil {
				// Keep showing the last good list; report the failure inline.
				fmt.Fprintf(cmd.ErrOrStderr(), "poll failed: %v\n", s.Err)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout())
			printTasksTable(cmd.OutOrStdout(), s.Data.Items)
		}
	}
}
