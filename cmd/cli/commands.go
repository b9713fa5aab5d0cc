package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mauv0809/dna-dashboard/internal/media"
	"github.com/spf13/cobra"
)

var (
	page     int
	pageSize int
	purpose  string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(hourlyCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(mediaCmd)

	playersCmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	playersCmd.Flags().IntVar(&pageSize, "page-size", 10, "Number of players per page")

	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsExportCmd)

	mediaUploadCmd.Flags().StringVar(&purpose, "purpose", string(media.PurposeBackground), "One of background, intro, win or other")
	mediaCmd.AddCommand(mediaListCmd, mediaUploadCmd, mediaDeleteCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List one page of player records",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(pageSize))
		return performGetRequest("/api/players?" + q.Encode())
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/stats")
	},
}

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Show player counts per hour for every day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/stats/hourly")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and change the game settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current game settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/settings")
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set key=value [key=value...]",
	Short: "Update one or more game settings",
	Example: `  dna-cli settings set numPairs=25 spin=false
  dna-cli settings set 'whitelistedPairs=[0,1,2]' introVideo=https://cdn.example.com/intro/a.mp4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := buildPatch(args)
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/api/settings", "application/json", bytes.NewReader(patch))
	},
}

var settingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the settings document served to game clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/settings/export")
	},
}

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage media files in the bucket",
}

var mediaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded media files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/upload")
	},
}

var mediaUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image or video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, contentType, err := multipartBody(args[0], purpose)
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/api/upload", contentType, body)
	},
}

var mediaDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a media file by its object key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := json.Marshal(map[string]string{"key": args[0]})
		if err != nil {
			return err
		}
		return performRequest(http.MethodDelete, "/api/upload", "application/json", bytes.NewReader(payload))
	},
}

// buildPatch turns key=value arguments into a settings patch. Values that are valid JSON
// are sent as is, anything else is sent as a string.
func buildPatch(args []string) ([]byte, error) {
	patch := make(map[string]json.RawMessage, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q, expected key=value", arg)
		}
		if json.Valid([]byte(value)) {
			patch[key] = json.RawMessage(value)
			continue
		}
		quoted, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		patch[key] = quoted
	}
	return json.Marshal(patch)
}

func multipartBody(path, purpose string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := filepath.Base(path)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", media.MimeFromKey(name))
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := w.WriteField("purpose", purpose); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, "", nil)
}

func performRequest(method, endpoint, contentType string, body io.Reader) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
