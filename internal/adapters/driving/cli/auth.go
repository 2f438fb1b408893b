package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/summa-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/summa-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Configure the LLM provider",
	Long: `View and configure the LLM provider used by the analysis pipeline.

Supported providers:
  ollama     - Local Ollama instance (no API key)
  openai     - OpenAI cloud API
  anthropic  - Anthropic cloud API

API keys are stored in the config file with owner-only permissions and are
never printed back in full.`,
	RunE: runAuthShow,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Configure the LLM provider interactively",
	RunE:  runAuthSet,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current LLM configuration",
	RunE:  runAuthShow,
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings := llmSettingsFromConfig()

	cmd.Println("LLM Configuration")
	cmd.Println("=================")
	if settings.Provider == "" {
		cmd.Println("No provider configured.")
		cmd.Println("Run 'summa auth set' to configure one.")
		return nil
	}

	cmd.Printf("  Provider: %s\n", settings.Provider)
	if settings.Model != "" {
		cmd.Printf("  Model: %s\n", settings.Model)
	} else {
		cmd.Printf("  Model: (provider default)\n")
	}
	if settings.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	}
	if settings.Provider.RequiresAPIKey() {
		if settings.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	if settings.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %.2f req/s\n", settings.RequestsPerSecond)
	}

	status := "configured"
	if !settings.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)

	return nil
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select LLM Provider")
	cmd.Println("-------------------")
	providers := []domain.AIProvider{
		domain.AIProviderOllama,
		domain.AIProviderOpenAI,
		domain.AIProviderAnthropic,
	}
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p)
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	provider := providers[idx-1]

	cmd.Print("Enter model name [provider default]: ")
	model := readLine(reader)

	settings := domain.LLMSettings{
		Provider: provider,
		Model:    model,
	}

	if provider == domain.AIProviderOllama {
		cmd.Print("Enter base URL [http://localhost:11434]: ")
		settings.BaseURL = readLine(reader)
	}

	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		settings.APIKey = readPassword()
		cmd.Println()
		if settings.APIKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	// Validate by pinging the provider before persisting anything.
	cmd.Print("Validating configuration... ")
	svc, err := ai.CreateAndValidateLLMService(&settings)
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	if svc != nil {
		svc.Close() //nolint:errcheck
	}
	cmd.Println("OK")

	if err := saveLLMSettings(settings); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	cmd.Printf("LLM provider configured: %s\n", provider)
	return nil
}

// llmSettingsFromConfig reads the LLM settings out of the config store.
func llmSettingsFromConfig() domain.LLMSettings {
	return domain.LLMSettings{
		Provider:          domain.AIProvider(configStore.GetString(config.KeyLLMProvider)),
		Model:             configStore.GetString(config.KeyLLMModel),
		BaseURL:           configStore.GetString(config.KeyLLMBaseURL),
		APIKey:            configStore.GetString(config.KeyLLMAPIKey),
		RequestsPerSecond: configStore.GetFloat(config.KeyLLMRate),
	}
}

// saveLLMSettings persists the LLM settings to the config store.
func saveLLMSettings(settings domain.LLMSettings) error {
	if err := configStore.Set(config.KeyLLMProvider, settings.Provider.String()); err != nil {
		return err
	}
	if err := configStore.Set(config.KeyLLMModel, settings.Model); err != nil {
		return err
	}
	if err := configStore.Set(config.KeyLLMBaseURL, settings.BaseURL); err != nil {
		return err
	}
	return configStore.Set(config.KeyLLMAPIKey, settings.APIKey)
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
