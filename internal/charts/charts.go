package charts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"mgnrega/server/config"
	"mgnrega/server/internal/models"

	"github.com/sirupsen/logrus"
)

// Renderer invokes the external chart-generation script. The contract is
// strict: one JSON payload on the command line, one JSON result object on
// stdout, and a hard timeout that kills the process.
type Renderer struct {
	logger     *logrus.Logger
	pythonPath string
	scriptPath string
	timeout    time.Duration
}

func NewRenderer(cfg *config.Config, logger *logrus.Logger) *Renderer {
	return &Renderer{
		logger:     logger,
		pythonPath: cfg.Charts.PythonPath,
		scriptPath: cfg.Charts.ScriptPath,
		timeout:    time.Duration(cfg.Charts.Timeout) * time.Second,
	}
}

type chartResult struct {
	Success bool   `json:"success"`
	Image   string `json:"image"`
	Error   string `json:"error"`
}

// Generate renders one chart and returns its base64-encoded image. Any
// deviation from the subprocess contract is an error.
func (r *Renderer) Generate(ctx context.Context, chartType string, data map[string]any) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"chartType": chartType,
		"data":      data,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.pythonPath, r.scriptPath, string(payload))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.WithField("chart", chartType).Info("Invoking chart renderer")
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("chart renderer timed out after %s for %s chart", r.timeout, chartType)
		}
		return "", fmt.Errorf("chart renderer failed for %s chart: %v (stderr: %s)", chartType, err, stderr.String())
	}

	if stdout.Len() == 0 {
		return "", fmt.Errorf("chart renderer produced no output for %s chart", chartType)
	}

	var result chartResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return "", fmt.Errorf("invalid chart renderer output for %s chart: %w", chartType, err)
	}
	if !result.Success {
		return "", fmt.Errorf("chart renderer reported error for %s chart: %s", chartType, result.Error)
	}

	return result.Image, nil
}

// GenerateAll renders the employment, expenditure and works charts for a
// summary, skipping any chart that fails.
func (r *Renderer) GenerateAll(ctx context.Context, summary models.Summary) map[string]string {
	configs := []struct {
		chartType string
		data      map[string]any
	}{
		{
			chartType: "employment",
			data: map[string]any{
				"personsDemanded": summary.Employment.PersonsDemanded,
				"personsEmployed": summary.Employment.PersonsEmployed,
			},
		},
		{
			chartType: "expenditure",
			data: map[string]any{
				"wages":    summary.Expenditure.Wages,
				"material": summary.Expenditure.Material,
				"admin":    summary.Expenditure.Admin,
			},
		},
		{
			chartType: "works",
			data: map[string]any{
				"total":      summary.Works.Total,
				"completed":  summary.Works.Completed,
				"inProgress": summary.Works.InProgress,
			},
		},
	}

	images := make(map[string]string)
	for _, cfg := range configs {
		image, err := r.Generate(ctx, cfg.chartType, cfg.data)
		if err != nil {
			r.logger.WithError(err).WithField("chart", cfg.chartType).Warn("Skipping chart")
			continue
		}
		images[cfg.chartType] = image
	}
	return images
}
