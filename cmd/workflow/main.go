// Command workflow runs the onboarding workflows from the command line,
// against either local files or the configured object store.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/rowfile"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/spreadsheet"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/storage"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/application/services"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/providers"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/infrastructure/clients/gemini"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/infrastructure/observability"
	"github.com/zatekoja/Facilityonboardingautomation/backend/pkg/config"
)

// Version is set at build time with ldflags.
var Version = "dev"

var (
	cfgFile      string
	workflowType string
	payloadFile  string
	folderID     string
	outputDir    string
)

var rootCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Facility onboarding workflow runner",
	Long: `Runs the facility onboarding workflows outside the API server.

The service_units workflow expands a facility configuration payload into the
full service unit hierarchy files. The users workflow validates a personnel
roster and produces the user provisioning files.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run one workflow against a payload file",
	RunE:  runProcess,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("workflow %s (%s)\n", Version, runtime.Version())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file overlaying the environment")

	processCmd.Flags().StringVar(&workflowType, "type", string(services.WorkflowTypeServiceUnits), "workflow to run: service_units or users")
	processCmd.Flags().StringVar(&payloadFile, "payload", "", "path to the JSON payload file")
	processCmd.Flags().StringVar(&folderID, "folder-id", "", "storage folder for inputs and outputs")
	processCmd.Flags().StringVar(&outputDir, "out", "", "write outputs to a local directory instead of the object store")
	processCmd.MarkFlagRequired("payload")
	processCmd.MarkFlagRequired("folder-id")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(versionCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, "development")

	payload, err := os.ReadFile(payloadFile)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	var store providers.ObjectStore
	if outputDir != "" {
		store = storage.NewLocalStore(outputDir)
	} else {
		store, err = storage.NewMinioStore(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("initialize object store: %w", err)
		}
	}

	geminiClient, err := gemini.NewClient(&cfg.Gemini)
	if err != nil {
		return fmt.Errorf("initialize gemini client: %w", err)
	}

	workflowService := services.NewWorkflowService(
		services.NewSkeletonService(),
		services.NewHierarchyService(),
		services.NewUserService(),
		geminiClient,
		geminiClient,
		store,
		rowfile.NewCSVSink(),
		spreadsheet.NewReader(),
		nil,
		cfg.Workspace.BaseDir,
	)

	result, err := workflowService.Run(context.Background(), &services.WorkflowRequest{
		Payload:      string(payload),
		WorkflowType: services.WorkflowType(workflowType),
		FolderID:     folderID,
	})
	if err != nil {
		return err
	}

	observability.GetLogger().Info().Strs("files", result.FilesGenerated).Msg("workflow completed")
	for _, file := range result.FilesGenerated {
		fmt.Println(file)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
