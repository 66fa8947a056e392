package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/logger"
	"github.com/careerup/careerup/internal/pipeline"
)

const (
	PromptShowJobs        = "Show jobs"
	PromptReportByCompany = "Report by companies"
	PromptShowAnalysis    = "Show analysis"
	PromptResultToFile    = "Dump result to file"
	PromptExit            = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowJobs, PromptReportByCompany, PromptShowAnalysis, PromptResultToFile, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a local PDF resume and search for matching jobs",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("file", "f", "", "path to the PDF resume")
	analyzeCmd.Flags().BoolP("auto-approve", "y", false, "print everything without asking")

	analyzeCmd.MarkFlagRequired("file")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	path, _ := cmd.Flags().GetString("file")
	if err := pipeline.ValidateFilename(path); err != nil {
		logger.Fatal("checking the resume file", zap.String("file", path), zap.Error(err))
	}
	if _, err := os.Stat(path); err != nil {
		logger.Fatal("checking the resume file", zap.Error(err))
	}

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	logger.Info("analyzing the resume", zap.String("file", path))

	result, err := svc.Run(ctx, pipeline.LocalFile(path))
	if err != nil {
		logger.Fatal("analyzing the resume", zap.Error(err))
	}

	logger.Info("analysis finished",
		zap.String("experience level", result.Analysis.ExperienceLevel),
		zap.Int("skills count", len(result.Analysis.Skills)),
		zap.Int("jobs count", len(result.Jobs)),
	)

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if autoApprove {
		for _, action := range []string{PromptShowAnalysis, PromptShowJobs} {
			if err := handleAction(action, logger, result); err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, result *pipeline.Response) error {
	switch action {
	case PromptShowJobs:
		pretty, _ := json.MarshalIndent(result.Jobs, "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", len(result.Jobs)))
		return nil
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(result.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", len(result.Jobs)))
		return nil
	case PromptShowAnalysis:
		pretty, _ := json.MarshalIndent(result.Analysis, "", "  ")
		logger.Info(string(pretty))
		return nil
	case PromptResultToFile:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump result to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
