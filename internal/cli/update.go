package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/minio/selfupdate"
	"github.com/spf13/cobra"

	"github.com/benchkit/benchkit/internal/style"
)

const (
	updateCacheFile = ".benchkit/update_cache.json"
	cacheExpiry     = 2 * time.Hour
	githubAPIURL    = "https://api.github.com/repos/benchkit/benchkit/releases/latest"
)

type UpdateInfo struct {
	LastChecked   time.Time `json:"last_checked"`
	LatestVersion string    `json:"latest_version"`
	CurrentIsOld  bool      `json:"current_is_old"`
	DownloadURL   string    `json:"download_url"`
}

type GitHubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update benchkit to the latest version",
	Long: `Update benchkit to the latest version available on GitHub.

This command:
- Checks for the latest release on GitHub
- Downloads the appropriate binary for your platform
- Replaces the current binary with the new version
`,
	Example: `
  benchkit update              # Update to latest version
  benchkit update --check      # Only check for updates without updating
  benchkit update --force      # Force update even if already on latest version`,
	Run: func(cmd *cobra.Command, args []string) {
		checkOnly, _ := cmd.Flags().GetBool("check")
		force, _ := cmd.Flags().GetBool("force")

		if checkOnly {
			checkForUpdate(cmd, true)
			return
		}

		performUpdate(cmd, force)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().Bool("check", false, "only check for updates without updating")
	updateCmd.Flags().Bool("force", false, "force update even if already on latest version")
}

// checkForUpdate checks if a newer version is available
func checkForUpdate(cmd *cobra.Command, verbose bool) *UpdateInfo {
	updateInfo := loadUpdateCache()

	// Check if cache is still valid
	if updateInfo != nil && time.Since(updateInfo.LastChecked) < cacheExpiry {
		if verbose {
			reportUpdateStatus(cmd, updateInfo)
		}
		return updateInfo
	}

	latest, downloadURL, err := fetchLatestVersion()
	if err != nil {
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Failed to check for updates: %s\n", style.ErrorIcon(), err)
		}
		return nil
	}

	currentVersion := normalizeVersion(Version)
	latestVersion := normalizeVersion(latest)

	currentSemver, err1 := semver.NewVersion(currentVersion)
	latestSemver, err2 := semver.NewVersion(latestVersion)

	isOutdated := false
	if err1 == nil && err2 == nil {
		isOutdated = currentSemver.LessThan(latestSemver)
	} else {
		// Fallback to string comparison if semver parsing fails
		isOutdated = currentVersion != latestVersion && Version != "dev"
	}

	updateInfo = &UpdateInfo{
		LastChecked:   time.Now(),
		LatestVersion: latest,
		CurrentIsOld:  isOutdated,
		DownloadURL:   downloadURL,
	}

	saveUpdateCache(updateInfo)

	if verbose {
		reportUpdateStatus(cmd, updateInfo)
	}

	return updateInfo
}

func reportUpdateStatus(cmd *cobra.Command, updateInfo *UpdateInfo) {
	if updateInfo.CurrentIsOld {
		fmt.Fprintf(cmd.OutOrStdout(), "%s A newer version (%s) is available!\n", style.InfoIcon(), updateInfo.LatestVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "Run 'benchkit update' to upgrade.\n")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s You are running the latest version (%s)\n", style.SuccessIcon(), Version)
	}
}

// ShouldShowUpdateNotification returns cached update info when a newer
// version is known. It never touches the network.
func ShouldShowUpdateNotification() *UpdateInfo {
	updateInfo := loadUpdateCache()
	if updateInfo == nil || !updateInfo.CurrentIsOld {
		return nil
	}
	return updateInfo
}

// performUpdate downloads and installs the latest version
func performUpdate(cmd *cobra.Command, force bool) {
	updateInfo := checkForUpdate(cmd, false)
	if updateInfo == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Failed to check for updates\n", style.ErrorIcon())
		return
	}

	if !updateInfo.CurrentIsOld && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "%s You are already running the latest version (%s)\n", style.SuccessIcon(), Version)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Downloading benchkit %s...\n", style.InfoIcon(), updateInfo.LatestVersion)

	resp, err := http.Get(updateInfo.DownloadURL)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Failed to download update: %s\n", style.ErrorIcon(), err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Download failed with status %d\n", style.ErrorIcon(), resp.StatusCode)
		return
	}

	if err := selfupdate.Apply(resp.Body, selfupdate.Options{}); err != nil {
		if rerr := selfupdate.RollbackError(err); rerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Failed to roll back from broken update: %s\n", style.ErrorIcon(), rerr)
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Failed to apply update: %s\n", style.ErrorIcon(), err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Successfully updated to benchkit %s!\n", style.SuccessIcon(), updateInfo.LatestVersion)
}

// fetchLatestVersion gets the latest version from GitHub API
func fetchLatestVersion() (version, downloadURL string, err error) {
	resp, err := http.Get(githubAPIURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch release info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", "", fmt.Errorf("failed to decode release info: %w", err)
	}

	// Find the appropriate asset for current platform
	assetName := fmt.Sprintf("benchkit_%s_%s", runtime.GOOS, runtime.GOARCH)
	if runtime.GOOS == "windows" {
		assetName += ".exe"
	}

	for _, asset := range release.Assets {
		if strings.Contains(asset.Name, assetName) {
			return release.TagName, asset.BrowserDownloadURL, nil
		}
	}

	return "", "", fmt.Errorf("no binary found for platform %s/%s", runtime.GOOS, runtime.GOARCH)
}

// normalizeVersion removes 'v' prefix from version strings
func normalizeVersion(version string) string {
	return strings.TrimPrefix(version, "v")
}

// loadUpdateCache loads cached update information
func loadUpdateCache() *UpdateInfo {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	cacheFile := filepath.Join(homeDir, updateCacheFile)
	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil
	}

	var updateInfo UpdateInfo
	if err := json.Unmarshal(data, &updateInfo); err != nil {
		return nil
	}

	return &updateInfo
}

// saveUpdateCache saves update information to cache
func saveUpdateCache(updateInfo *UpdateInfo) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return
	}

	benchkitDir := filepath.Join(homeDir, ".benchkit")
	_ = os.MkdirAll(benchkitDir, 0755)

	cacheFile := filepath.Join(homeDir, updateCacheFile)
	data, err := json.MarshalIndent(updateInfo, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(cacheFile, data, 0644)
}
