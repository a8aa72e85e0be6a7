// File: cmd/capture.go
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nghalot5-hub/crm.vtiger/internal/browser"
	"github.com/nghalot5-hub/crm.vtiger/internal/observability"
)

var (
	captureName    string
	captureWaitFor string
	captureTimeout time.Duration
)

// captureCmd loads a page and writes a screenshot, exercising the full
// browser stack end to end. Useful as a smoke check of a deployment.
var captureCmd = &cobra.Command{
	Use:   "capture <url>",
	Short: "Navigate to a URL and save a timestamped screenshot.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger().Named("capture")
		url := args[0]

		mgr := browser.NewManager(appConfig, observability.GetLogger())
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), captureTimeout)
			defer cancel()
			if err := mgr.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Browser shutdown reported an error", zap.Error(err))
			}
		}()

		session, err := mgr.NewSession(cmd.Context())
		if err != nil {
			return err
		}

		if err := session.Navigate(cmd.Context(), url); err != nil {
			return err
		}

		if captureWaitFor != "" {
			if err := session.WaitVisible(cmd.Context(), captureWaitFor, browser.WaitOptions{}); err != nil {
				return err
			}
		}

		path, err := session.CaptureScreenshotTimestamped(cmd.Context(), captureName)
		if err != nil {
			return err
		}

		logger.Info("Screenshot captured", zap.String("url", url), zap.String("path", path))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	captureCmd.Flags().StringVar(&captureName, "name", "capture", "base name for the screenshot file")
	captureCmd.Flags().StringVar(&captureWaitFor, "wait-for", "", "selector to wait for before capturing")
	captureCmd.Flags().DurationVar(&captureTimeout, "shutdown-timeout", 15*time.Second, "how long to wait for the browser to shut down")
	rootCmd.AddCommand(captureCmd)
}
