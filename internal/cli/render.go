// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
	"github.com/yjcyxky/biominer-app-util/internal/db"
	"github.com/yjcyxky/biominer-app-util/internal/i18n"
	"github.com/yjcyxky/biominer-app-util/internal/logging"
	"github.com/yjcyxky/biominer-app-util/internal/model"
	"github.com/yjcyxky/biominer-app-util/internal/render"
)

var (
	renderProjectName  string
	renderWorkDir      string
	renderForce        bool
	variablesNoDefault bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderProjectName, "project-name", "p", "", "Name of the rendered project (required)")
	renderCmd.Flags().StringVarP(&renderWorkDir, "work-dir", "w", "", "Directory to render into (defaults to project_dir from the config)")
	renderCmd.Flags().BoolVarP(&renderForce, "force", "f", false, "Render into sample directories that already exist")
	_ = renderCmd.MarkFlagRequired("project-name")

	variablesCmd.Flags().BoolVar(&variablesNoDefault, "no-default", false, "Hide variables that have a default value")
}

// renderCmd instantiates an installed app for every sample in a samples
// file, producing one pipeline directory per sample.
var renderCmd = &cobra.Command{
	Use:   "render <app> <samples-file>",
	Short: "Render an app into per-sample pipeline projects",
	Long: `Render instantiates an installed app for each sample in the samples
file (JSON, YAML or CSV). Every sample gets its own directory under
<work-dir>/<project-name>/<sample_id>/ containing the rendered inputs,
workflow.wdl, the tasks directory and a Cromwell-compatible tasks.zip.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := appdir.Find(appConfig.AppDir, args[0])
		if err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}

		samples, err := render.ParseSamples(args[1])
		if err != nil {
			logging.Errorf("%s", i18n.T("render.error_samples", err))
			os.Exit(1)
		}

		workDir := renderWorkDir
		if workDir == "" {
			workDir = appConfig.ProjectDir
		}

		err = render.RenderProject(render.ProjectRequest{
			App:         app,
			ProjectName: renderProjectName,
			WorkDir:     workDir,
			Samples:     samples,
			Force:       renderForce,
		})
		if err != nil {
			var jsonErr *render.JSONError
			if errors.As(err, &jsonErr) {
				logging.Errorf("%s", i18n.T("render.failed", err))
				os.Exit(exitBadJSON)
			}
			logging.Errorf("%s", i18n.T("render.failed", err))
			os.Exit(1)
		}

		if db.IsInitialized() {
			job := model.RenderJob{
				ID:          uuid.NewString(),
				ProjectName: renderProjectName,
				AppName:     app.Name,
				SampleCount: len(samples),
			}
			if err := db.Default().AddRenderJob(job); err != nil {
				logging.Warnf("%s", i18n.T("registry.warn_unavailable", err))
			}
		}

		fmt.Println(i18n.T("render.success", renderProjectName, len(samples)))
	},
}

// variablesCmd lists the template variables an app expects in its samples
// file.
var variablesCmd = &cobra.Command{
	Use:   "variables <app>",
	Short: "List the template variables of an installed app",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := appdir.Find(appConfig.AppDir, args[0])
		if err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}

		vars, err := render.AppVariables(app.Path, variablesNoDefault)
		if err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}
		if len(vars) == 0 {
			fmt.Println(i18n.T("variables.none"))
			return
		}

		defaults, err := appdir.LoadDefaults(app.Path)
		if err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}
		defaultValues := defaults.Values(vars)
		for _, v := range vars {
			if dv, ok := defaultValues[v]; ok {
				fmt.Printf("%s = %s\n", v, appdir.FormatValue(dv))
			} else {
				fmt.Println(v)
			}
		}
	},
}
