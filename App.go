package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/devtron-labs/chart-builder/pkg"
	"github.com/devtron-labs/chart-builder/pkg/helm"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Logger           *zap.SugaredLogger
	chartBuilder     pkg.ChartBuilder
	definitionLoader pkg.DefinitionLoader
	out              io.Writer
}

func NewApp(Logger *zap.SugaredLogger,
	chartBuilder pkg.ChartBuilder,
	definitionLoader pkg.DefinitionLoader) *App {
	return &App{
		Logger:           Logger,
		chartBuilder:     chartBuilder,
		definitionLoader: definitionLoader,
		out:              os.Stdout,
	}
}

func (app *App) Start(ctx context.Context, args []string) error {
	root := app.rootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		app.Logger.Errorw("err", "err", err)
	}
	return err
}

func (app *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "chart-builder",
		Short:         "Generate helm charts from kubernetes objects and manage their releases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.out)
	root.AddCommand(
		app.generateCommand(),
		app.installCommand(),
		app.upgradeCommand(),
		app.uninstallCommand(),
		app.listCommand(),
		app.statusCommand(),
	)
	return root
}

func (app *App) generateCommand() *cobra.Command {
	var definition string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the chart directory for a chart definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := app.definitionLoader.Load(definition)
			if err != nil {
				return err
			}
			chartPath, err := app.chartBuilder.GenerateChart(chart)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), chartPath)
			return nil
		},
	}
	addDefinitionFlag(cmd, &definition)
	return cmd
}

func (app *App) installCommand() *cobra.Command {
	var definition string
	var flags []string
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Generate a chart and install it as a new release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := app.definitionLoader.Load(definition)
			if err != nil {
				return err
			}
			options, err := helm.ParseOptions(flags)
			if err != nil {
				return err
			}
			if err := app.chartBuilder.InstallChart(cmd.Context(), chart, options); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "release %q installed\n", chart.Name())
			return nil
		},
	}
	addDefinitionFlag(cmd, &definition)
	addOptionFlag(cmd, &flags)
	return cmd
}

func (app *App) upgradeCommand() *cobra.Command {
	var definition string
	var flags []string
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Regenerate a chart and upgrade its installed release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := app.definitionLoader.Load(definition)
			if err != nil {
				return err
			}
			options, err := helm.ParseOptions(flags)
			if err != nil {
				return err
			}
			if err := app.chartBuilder.UpgradeChart(cmd.Context(), chart, options); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "release %q upgraded\n", chart.Name())
			return nil
		},
	}
	addDefinitionFlag(cmd, &definition)
	addOptionFlag(cmd, &flags)
	return cmd
}

func (app *App) uninstallCommand() *cobra.Command {
	var flags []string
	cmd := &cobra.Command{
		Use:   "uninstall NAME",
		Short: "Uninstall a release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := helm.ParseOptions(flags)
			if err != nil {
				return err
			}
			if err := app.chartBuilder.UninstallChart(cmd.Context(), args[0], options); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "release %q uninstalled\n", args[0])
			return nil
		},
	}
	addOptionFlag(cmd, &flags)
	return cmd
}

var listColumns = []string{helm.NameColumn, "NAMESPACE", "REVISION", "STATUS", "CHART", "APP VERSION"}

func (app *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			releases, err := app.chartBuilder.ListReleases(cmd.Context())
			if err != nil {
				return err
			}
			table := uitable.New()
			table.MaxColWidth = 60
			header := make([]interface{}, len(listColumns))
			for i, c := range listColumns {
				header[i] = c
			}
			table.AddRow(header...)
			for _, r := range releases {
				row := make([]interface{}, len(listColumns))
				for i, c := range listColumns {
					row[i] = r[c]
				}
				table.AddRow(row...)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
}

func (app *App) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status NAME",
		Short: "Report whether a release is installed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			installed, err := app.chartBuilder.IsInstalled(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if installed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: installed\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not installed\n", args[0])
			}
			return nil
		},
	}
}

func addDefinitionFlag(cmd *cobra.Command, definition *string) {
	cmd.Flags().StringVarP(definition, "file", "f", "chart.yaml", "chart definition file")
}

func addOptionFlag(cmd *cobra.Command, flags *[]string) {
	cmd.Flags().StringArrayVarP(flags, "option", "o", nil, "flag passed to helm as name or name=value, repeatable")
}
