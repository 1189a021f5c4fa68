// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
	"github.com/yjcyxky/biominer-app-util/internal/db"
	"github.com/yjcyxky/biominer-app-util/internal/i18n"
	"github.com/yjcyxky/biominer-app-util/internal/installer"
	"github.com/yjcyxky/biominer-app-util/internal/logging"
	"github.com/yjcyxky/biominer-app-util/internal/model"
)

// Exit codes kept stable for scripting: 1 when the app is already
// installed, 2 when the install itself fails.
const (
	exitAlreadyInstalled = 1
	exitInstallFailed    = 2
	exitBadJSON          = 3
)

var (
	installForce    bool
	installUsername string
	installEndpoint string
	installPassword string
	uninstallYes    bool
)

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Remove an existing install of the same app first")
	installCmd.Flags().StringVarP(&installUsername, "username", "u", "", "App store username (defaults to store.username from the config)")
	installCmd.Flags().StringVarP(&installEndpoint, "endpoint", "e", "", "App store endpoint (defaults to store.endpoint from the config)")
	installCmd.Flags().StringVarP(&installPassword, "password", "p", "", "App store password (prompted when omitted)")

	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "Do not ask for confirmation")
}

// installCmd installs an app from the git-backed app store or, when the
// argument is a local zip archive, from that archive.
var installCmd = &cobra.Command{
	Use:   "install <namespace/name[:version] | archive.zip>",
	Short: "Install a WDL app from the app store or a local zip archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		if strings.HasSuffix(strings.ToLower(target), ".zip") {
			runZipInstall(target)
			return
		}
		runGitInstall(cmd, target)
	},
}

func runGitInstall(cmd *cobra.Command, target string) {
	name, err := model.ParseAppName(target)
	if err != nil {
		logging.Errorf("%v", err)
		os.Exit(exitInstallFailed)
	}

	if installForce {
		// A failed previous install may have left a partial directory.
		_ = os.RemoveAll(filepath.Join(appConfig.AppDir, name.Dir()))
	}

	opts := installer.GitOptions{
		Endpoint: appConfig.Store.Endpoint,
		Username: appConfig.Store.Username,
	}
	if installEndpoint != "" {
		opts.Endpoint = installEndpoint
	}
	if installUsername != "" {
		opts.Username = installUsername
	}
	if opts.Username == "" {
		logging.Errorf("%s", i18n.T("install.username_required"))
		os.Exit(exitInstallFailed)
	}

	opts.Password = installPassword
	if opts.Password == "" {
		pw, err := promptForPassword(i18n.T("install.password_prompt"))
		if err != nil {
			logging.Errorf("%s", i18n.T("install.error_read_password", err))
			os.Exit(exitInstallFailed)
		}
		opts.Password = pw
	}

	path, err := installer.InstallFromGit(cmd.Context(), appConfig.AppDir, name, opts)
	if err != nil {
		if errors.Is(err, installer.ErrAlreadyInstalled) {
			logging.Errorf("%s", i18n.T("install.already_installed", name))
			os.Exit(exitAlreadyInstalled)
		}
		logging.Errorf("%s", i18n.T("install.failed", name, err))
		os.Exit(exitInstallFailed)
	}

	recordInstall(name, path, "git")
	fmt.Println(i18n.T("install.success", name))
}

func runZipInstall(zipPath string) {
	appName, err := installer.InstallFromZip(zipPath, appConfig.AppDir, installForce)
	if err != nil {
		if errors.Is(err, installer.ErrAlreadyInstalled) {
			logging.Errorf("%s", i18n.T("install.already_installed", zipPath))
			os.Exit(exitAlreadyInstalled)
		}
		logging.Errorf("%s", i18n.T("install.failed", zipPath, err))
		os.Exit(exitInstallFailed)
	}

	// Archives carry no namespace; file them under "local" in the registry.
	recordInstall(
		model.AppName{Namespace: "local", Name: appName, Version: model.DefaultVersion},
		filepath.Join(appConfig.AppDir, appName), "zip")
	fmt.Println(i18n.T("install.success", appName))
}

// recordInstall writes the registry record when the registry is available.
func recordInstall(name model.AppName, path, source string) {
	if !db.IsInitialized() {
		return
	}
	if err := db.Default().RecordInstall(name, path, source); err != nil {
		logging.Warnf("%s", i18n.T("registry.warn_unavailable", err))
	}
}

// promptForPassword reads a password without echo when stdin is a terminal,
// and falls back to a plain line read otherwise (pipes, CI).
func promptForPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// uninstallCmd removes an installed app and its registry record.
var uninstallCmd = &cobra.Command{
	Use:   "uninstall <namespace/name[:version] | name>",
	Short: "Uninstall a WDL app",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]

		// Resolve the install path before the directory is removed; the
		// registry record is matched by path.
		app, err := appdir.Find(appConfig.AppDir, target)
		if err != nil {
			logging.Errorf("%s", i18n.T("uninstall.not_found", target))
			os.Exit(1)
		}

		confirm := promptForConfirmation
		if uninstallYes {
			confirm = nil
		}

		err = installer.Uninstall(appConfig.AppDir, target, confirm)
		switch {
		case errors.Is(err, installer.ErrNotInstalled):
			logging.Errorf("%s", i18n.T("uninstall.not_found", target))
			os.Exit(1)
		case errors.Is(err, installer.ErrCancelled):
			fmt.Println(i18n.T("uninstall.cancelled", target))
			return
		case err != nil:
			logging.Errorf("%v", err)
			os.Exit(1)
		}

		deleteInstallRecord(app.Path, target)
		fmt.Println(i18n.T("uninstall.success", target))
	},
}

// deleteInstallRecord clears the registry row for an uninstalled app,
// matching by install path first and by parsed store name as a fallback.
// Apps installed before the registry existed have no row; that is fine.
func deleteInstallRecord(path, target string) {
	if !db.IsInitialized() {
		return
	}
	err := db.Default().DeleteInstallByPath(path)
	if errors.Is(err, db.ErrNotFound) {
		if name, perr := model.ParseAppName(target); perr == nil {
			err = db.Default().DeleteInstall(name)
		}
	}
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		logging.Warnf("%s", i18n.T("registry.warn_unavailable", err))
	}
}

// promptForConfirmation asks a Yes/No question on the terminal and repeats
// until it gets a usable answer.
func promptForConfirmation(name string) bool {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(i18n.T("uninstall.confirm", name))
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Println(i18n.T("uninstall.enter_yes_no"))
	}
}
