// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
	"github.com/yjcyxky/biominer-app-util/internal/db"
	"github.com/yjcyxky/biominer-app-util/internal/i18n"
	"github.com/yjcyxky/biominer-app-util/internal/logging"
	"github.com/yjcyxky/biominer-app-util/internal/manual"
)

var (
	manualFormat string
	manualOutput string
)

func init() {
	manualCmd.Flags().StringVar(&manualFormat, "format", "markdown", `Manual format ("markdown" or "html")`)
	manualCmd.Flags().StringVarP(&manualOutput, "output", "o", "", "Write the manual to a file instead of stdout")
}

// appsCmd lists the installed apps found under the app directory.
var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List installed WDL apps",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		apps, err := appdir.List(appConfig.AppDir)
		if err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}
		if len(apps) == 0 {
			fmt.Println(i18n.T("apps.none"))
			return
		}

		// Registry metadata is optional; the filesystem is the source of
		// truth for what is installed.
		sources := map[string]string{}
		if db.IsInitialized() {
			if records, err := db.Default().GetInstalledApps(); err == nil {
				for _, r := range records {
					sources[r.Path] = r.Source
				}
			}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSOURCE\tPATH")
		for _, app := range apps {
			source := sources[app.Path]
			if source == "" {
				source = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", app.Name, source, app.Path)
		}
		_ = w.Flush()
	},
}

// manualCmd shows an app's README, optionally converted to HTML or written
// to a file.
var manualCmd = &cobra.Command{
	Use:   "manual <app>",
	Short: "Show the manual of an installed app",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := appdir.Find(appConfig.AppDir, args[0])
		if err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}

		text, err := manual.Render(app.Path, app.Name, manual.Format(manualFormat), manualOutput)
		if err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}
		fmt.Println(text)
	},
}

// historyCmd prints the registry audit log, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the install and render history",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !db.IsInitialized() {
			fmt.Println(i18n.T("history.empty"))
			return
		}
		entries, err := db.Default().GetAllAuditLogEntries()
		if err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}
		if len(entries) == 0 {
			fmt.Println(i18n.T("history.empty"))
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTION\tDETAILS")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.Details)
		}
		_ = w.Flush()
	},
}
