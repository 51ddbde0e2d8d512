package deployer

import (
	"context"
	"deployer/internal/logger"
	"deployer/internal/model"
	"errors"
	"fmt"
	"net/url"
	"os"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

const DefaultTimeout = 30 * time.Second

var UserAgent = fmt.Sprintf("deployer (%s; %s)", runtime.GOOS, runtime.GOARCH)

var errNotText = errors.New("file is not valid UTF-8 text")

// Uploader posts the raw script to the server. It holds no per-call state
// and is safe to share.
type Uploader struct {
	client *req.Client
}

func NewUploader(server string, timeout time.Duration) (*Uploader, error) {
	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClientInit, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: unsupported server url %q", ErrClientInit, server)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := req.C().
		SetTimeout(timeout).
		SetUserAgent(UserAgent)

	return &Uploader{client: client}, nil
}

func (u *Uploader) Upload(ctx context.Context, target model.DeployTarget) model.UploadResult {
	start := time.Now()

	content, err := readScript(target.File)
	if err != nil {
		logger.Log.Error("failed to read script",
			zap.String("file", target.File),
			zap.Error(err))
		return model.UploadResult{Err: err}
	}

	apiURL := target.URL()
	logger.Log.Info("deploying",
		zap.String("file", target.File),
		zap.String("url", apiURL),
		zap.String("size", humanize.Bytes(uint64(len(content)))))

	resp, err := u.client.R().
		SetContext(ctx).
		SetBodyBytes(content).
		Post(apiURL)

	result := model.UploadResult{
		Size:     len(content),
		Duration: time.Since(start),
	}

	if err != nil {
		result.Err = fmt.Errorf("request to %s failed: %w", apiURL, err)
		logger.Log.Error("deploy request failed",
			zap.String("uri", target.URI),
			zap.Error(err))
		return result
	}

	result.StatusCode = resp.GetStatusCode()
	if resp.IsSuccessState() {
		result.Success = true
		logger.Log.Info("deployed",
			zap.String("uri", target.URI),
			zap.Int("status", result.StatusCode),
			zap.Duration("took", result.Duration))
		return result
	}

	result.Detail = resp.String()
	logger.Log.Error("deploy rejected",
		zap.String("uri", target.URI),
		zap.Int("status", result.StatusCode),
		zap.String("detail", result.Detail))

	return result
}

// Preflight checks that the script exists before anything touches the network.
func Preflight(target model.DeployTarget) error {
	info, err := os.Stat(target.File)
	if err != nil {
		return fmt.Errorf("%w: file %q does not exist", ErrInputValidation, target.File)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %q is a directory", ErrInputValidation, target.File)
	}

	return nil
}

func readScript(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s: %w", path, errNotText)
	}

	return content, nil
}
