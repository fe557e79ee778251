package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"claudewarp/config"
	"claudewarp/config/models"
	"claudewarp/internal/tui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// testEnv holds the paths used by one CLI test
type testEnv struct {
	configPath   string
	settingsPath string
}

func setupCLITest(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()
	claudeDir := filepath.Join(dir, ".claude")
	if err := os.MkdirAll(claudeDir, 0o755); err != nil {
		t.Fatalf("Failed to create claude dir: %v", err)
	}
	t.Setenv("CLAUDE_CONFIG_DIR", claudeDir)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "")

	oldInteractive, oldPrompter, oldPicker := isInteractive, newPrompter, runPicker
	isInteractive = func() bool { return false }
	t.Cleanup(func() {
		isInteractive, newPrompter, runPicker = oldInteractive, oldPrompter, oldPicker
	})

	return testEnv{
		configPath:   filepath.Join(dir, "config.toml"),
		settingsPath: filepath.Join(claudeDir, "settings.json"),
	}
}

// resetFlags restores every flag to its default between executions
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			def := strings.Trim(f.DefValue, "[]")
			var vals []string
			if def != "" {
				vals = strings.Split(def, ",")
			}
			_ = sv.Replace(vals)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI against env and returns stdout and stderr
func (env testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (env testEnv) mustRun(t *testing.T, args ...string) (string, string) {
	t.Helper()
	stdout, stderr, err := env.run(t, args...)
	if err != nil {
		t.Fatalf("cw %s: unexpected error: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return stdout, stderr
}

func (env testEnv) listJSON(t *testing.T) listOutput {
	t.Helper()
	stdout, _ := env.mustRun(t, "list", "--format", "json")
	var out listOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("Failed to parse list output: %v\n%s", err, stdout)
	}
	return out
}

func writeSettings(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write claude settings: %v", err)
	}
}

func readSettingsEnv(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read claude settings: %v", err)
	}
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		t.Fatalf("Failed to parse claude settings: %v", err)
	}
	env, _ := settings["env"].(map[string]any)
	return env
}

// scriptedPrompter answers prompts from fixed queues
type scriptedPrompter struct {
	answers  []string
	secrets  []string
	confirms []bool
}

func (p *scriptedPrompter) Ask(label, def string) (string, error) {
	if len(p.answers) == 0 {
		return "", errCancelled
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	if a == "" {
		return def, nil
	}
	return a, nil
}

func (p *scriptedPrompter) AskSecret(label string) (string, error) {
	if len(p.secrets) == 0 {
		return "", errCancelled
	}
	s := p.secrets[0]
	p.secrets = p.secrets[1:]
	return s, nil
}

func (p *scriptedPrompter) Confirm(label string, def bool) (bool, error) {
	if len(p.confirms) == 0 {
		return def, nil
	}
	c := p.confirms[0]
	p.confirms = p.confirms[1:]
	return c, nil
}

func (p *scriptedPrompter) Close() error { return nil }

func useScript(p *scriptedPrompter) {
	isInteractive = func() bool { return true }
	newPrompter = func() (prompter, error) { return p, nil }
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"add", "list", "use", "current", "remove", "export", "info", "edit", "search", "toggle", "backup"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("command %q is not registered", name)
			continue
		}
		if c.RunE == nil {
			t.Errorf("%s: RunE should not be nil", name)
		}
		if c.Short == "" {
			t.Errorf("%s: Short should not be empty", name)
		}
	}
}

func TestAddAndList(t *testing.T) {
	env := setupCLITest(t)

	_, stderr := env.mustRun(t, "add", "work", "--url", "https://proxy.example.com", "--key", "sk-work-123456", "--tags", "team, eu")
	if !strings.Contains(stderr, "Profile 'work' added") {
		t.Errorf("stderr = %q, want added message", stderr)
	}
	if !strings.Contains(stderr, "'work' is now the current profile") {
		t.Errorf("stderr = %q, first profile should become current", stderr)
	}

	env.mustRun(t, "add", "--name", "relay", "-u", "https://relay.example.com/v1", "--auth-token", "tok-relay-abcdef", "-d", "Team relay")

	out := env.listJSON(t)
	if out.Current != "work" || out.Total != 2 {
		t.Fatalf("list = current %q total %d, want work 2", out.Current, out.Total)
	}
	work, relay := out.Profiles[0], out.Profiles[1]
	if work.Name != "work" || relay.Name != "relay" {
		t.Errorf("order = %s, %s; want insertion order", work.Name, relay.Name)
	}
	if work.BaseURL != "https://proxy.example.com/" {
		t.Errorf("BaseURL = %q, want normalized trailing slash", work.BaseURL)
	}
	if work.APIKey != "sk-w****3456" {
		t.Errorf("APIKey = %q, want masked", work.APIKey)
	}
	if relay.APIKey != "" || relay.AuthToken != "tok-****cdef" {
		t.Errorf("relay credential = %q/%q, want masked auth token only", relay.APIKey, relay.AuthToken)
	}
	if strings.Join(work.Tags, ",") != "team,eu" {
		t.Errorf("Tags = %v", work.Tags)
	}

	stdout, _ := env.mustRun(t, "list", "--format", "simple")
	if stdout != "* work\n  relay\n" {
		t.Errorf("simple list = %q", stdout)
	}

	stdout, _ = env.mustRun(t, "list", "--format", "simple", "--all")
	if !strings.Contains(stdout, "  no\n") {
		t.Errorf("--all should include the built-in profile: %q", stdout)
	}

	stdout, _ = env.mustRun(t, "list", "--format", "yaml", "--search", "relay")
	if !strings.Contains(stdout, "name: relay") || strings.Contains(stdout, "name: work") {
		t.Errorf("yaml search output = %q", stdout)
	}

	stdout, _ = env.mustRun(t, "list")
	for _, want := range []string{"work", "relay", "API key sk-w****3456", "* current profile"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("table output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "sk-work-123456") {
		t.Error("table output leaks the API key")
	}

	if _, _, err := env.run(t, "list", "--format", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestAddErrors(t *testing.T) {
	env := setupCLITest(t)

	if _, _, err := env.run(t, "add", "work", "--url", "https://a.example.com"); err == nil || !strings.Contains(err.Error(), "missing required fields") {
		t.Errorf("missing credential error = %v", err)
	}

	_, _, err := env.run(t, "add", "no", "--url", "https://a.example.com", "--key", "sk-1")
	if !config.IsValidation(err) {
		t.Errorf("reserved name error = %v, want validation error", err)
	}

	env.mustRun(t, "add", "work", "--url", "https://a.example.com", "--key", "sk-1")
	_, _, err = env.run(t, "add", "work", "--url", "https://b.example.com", "--key", "sk-2")
	if !config.IsDuplicate(err) {
		t.Errorf("duplicate error = %v", err)
	}

	if _, _, err := env.run(t, "add", "a", "--name", "b", "--url", "https://a.example.com", "--key", "sk-1"); err == nil {
		t.Error("conflicting names should fail")
	}
}

func TestAddInteractive(t *testing.T) {
	env := setupCLITest(t)
	useScript(&scriptedPrompter{
		answers:  []string{"relay", ""},
		confirms: []bool{true},
		secrets:  []string{"tok-interactive"},
	})

	env.mustRun(t, "add")

	out := env.listJSON(t)
	if out.Total != 1 || out.Profiles[0].Name != "relay" {
		t.Fatalf("profiles = %+v", out.Profiles)
	}
	if out.Profiles[0].BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want default", out.Profiles[0].BaseURL)
	}
	if out.Profiles[0].AuthToken == "" || out.Profiles[0].APIKey != "" {
		t.Errorf("credential should be an auth token: %+v", out.Profiles[0])
	}
}

func TestUseSyncsClaudeSettings(t *testing.T) {
	env := setupCLITest(t)
	writeSettings(t, env.settingsPath, `{"model":"opus","env":{"OTHER":"1","ANTHROPIC_MODEL":"stale"}}`)

	env.mustRun(t, "add", "a", "--url", "https://a.example.com", "--key", "sk-a")
	env.mustRun(t, "add", "b", "--url", "https://b.example.com", "--auth-token", "tok-b", "--bigmodel", "claude-big")

	_, stderr := env.mustRun(t, "use", "b")
	if !strings.Contains(stderr, "Switched to 'b'") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stderr, "export --name b") {
		t.Errorf("stderr should contain the eval hint: %q", stderr)
	}

	settings := readSettingsEnv(t, env.settingsPath)
	if settings["ANTHROPIC_BASE_URL"] != "https://b.example.com/" {
		t.Errorf("ANTHROPIC_BASE_URL = %v", settings["ANTHROPIC_BASE_URL"])
	}
	if settings["ANTHROPIC_AUTH_TOKEN"] != "tok-b" || settings["ANTHROPIC_API_KEY"] != nil {
		t.Errorf("credential keys = %v / %v", settings["ANTHROPIC_AUTH_TOKEN"], settings["ANTHROPIC_API_KEY"])
	}
	if settings["ANTHROPIC_MODEL"] != "claude-big" {
		t.Errorf("ANTHROPIC_MODEL = %v", settings["ANTHROPIC_MODEL"])
	}
	if settings["OTHER"] != "1" {
		t.Errorf("OTHER = %v, unmanaged keys must be preserved", settings["OTHER"])
	}

	_, stderr = env.mustRun(t, "use", "no")
	if !strings.Contains(stderr, "no profile is current") {
		t.Errorf("stderr = %q", stderr)
	}
	settings = readSettingsEnv(t, env.settingsPath)
	for k := range settings {
		if strings.HasPrefix(k, "ANTHROPIC_") {
			t.Errorf("%s should be cleared", k)
		}
	}
	if settings["OTHER"] != "1" {
		t.Errorf("OTHER = %v after clear", settings["OTHER"])
	}

	if out := env.listJSON(t); out.Current != "" {
		t.Errorf("Current = %q after use no", out.Current)
	}

	env.mustRun(t, "--no-sync", "use", "a")
	settings = readSettingsEnv(t, env.settingsPath)
	if _, ok := settings["ANTHROPIC_BASE_URL"]; ok {
		t.Error("--no-sync should leave Claude settings untouched")
	}
}

func TestUseDisabledProfile(t *testing.T) {
	env := setupCLITest(t)
	env.mustRun(t, "add", "a", "--url", "https://a.example.com", "--key", "sk-a")
	env.mustRun(t, "add", "off", "--url", "https://off.example.com", "--key", "sk-off", "--disabled")

	if _, _, err := env.run(t, "use", "off"); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Errorf("disabled profile without --force: err = %v", err)
	}

	useScript(&scriptedPrompter{confirms: []bool{false}})
	_, stderr := env.mustRun(t, "use", "off")
	if !strings.Contains(stderr, "Switch cancelled") {
		t.Errorf("stderr = %q", stderr)
	}
	if out := env.listJSON(t); out.Current != "a" {
		t.Errorf("Current = %q, cancelled switch must not change it", out.Current)
	}

	env.mustRun(t, "use", "off", "--force")
	if out := env.listJSON(t); out.Current != "off" {
		t.Errorf("Current = %q, want off", out.Current)
	}

	_, _, err := env.run(t, "use", "missing")
	if !config.IsNotFound(err) {
		t.Errorf("unknown profile error = %v", err)
	}
}

func TestUsePicker(t *testing.T) {
	env := setupCLITest(t)
	env.mustRun(t, "add", "a", "--url", "https://a.example.com", "--key", "sk-a")
	env.mustRun(t, "add", "b", "--url", "https://b.example.com", "--key", "sk-b")

	var offered []string
	runPicker = func(profiles []models.Profile, current string) (tui.PickerResult, error) {
		for _, p := range profiles {
			offered = append(offered, p.Name)
		}
		if current != "a" {
			t.Errorf("picker current = %q, want a", current)
		}
		return tui.PickerResult{Action: tui.ActionSwitch, Name: "b"}, nil
	}

	env.mustRun(t, "use")
	if strings.Join(offered, ",") != "a,b,no" {
		t.Errorf("picker offered %v", offered)
	}
	if out := env.listJSON(t); out.Current != "b" {
		t.Errorf("Current = %q, want b", out.Current)
	}

	runPicker = func(profiles []models.Profile, current string) (tui.PickerResult, error) {
		return tui.PickerResult{Action: tui.ActionQuit}, nil
	}
	env.mustRun(t, "use")
	if out := env.listJSON(t); out.Current != "b" {
		t.Errorf("Current = %q after quitting the picker", out.Current)
	}

	runPicker = func(profiles []models.Profile, current string) (tui.PickerResult, error) {
		return tui.PickerResult{}, errors.New("no terminal")
	}
	if _, _, err := env.run(t, "use"); err == nil {
		t.Error("picker error should be returned")
	}
}

func TestCurrentCommand(t *testing.T) {
	env := setupCLITest(t)

	_, stderr := env.mustRun(t, "current")
	if !strings.Contains(stderr, "No profile is current") {
		t.Errorf("stderr = %q", stderr)
	}

	env.mustRun(t, "add", "work", "--url", "https://proxy.example.com", "--key", "sk-work-123456", "-d", "Main proxy")
	stdout, _ := env.mustRun(t, "current")
	for _, want := range []string{"work (current)", "https://proxy.example.com/", "sk-w****3456", "Main proxy"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("current output missing %q:\n%s", want, stdout)
		}
	}

	env.mustRun(t, "use", "no")
	_, stderr = env.mustRun(t, "current")
	if !strings.Contains(stderr, "Available profiles:") || !strings.Contains(stderr, "  work") {
		t.Errorf("stderr should list available profiles: %q", stderr)
	}
}

func TestRemoveCommand(t *testing.T) {
	env := setupCLITest(t)
	env.mustRun(t, "add", "a", "--url", "https://a.example.com", "--key", "sk-a")
	env.mustRun(t, "add", "b", "--url", "https://b.example.com", "--key", "sk-b")

	if _, _, err := env.run(t, "remove", "b"); err == nil {
		t.Error("remove without --force outside a terminal should fail")
	}

	useScript(&scriptedPrompter{confirms: []bool{false}})
	_, stderr := env.mustRun(t, "remove", "b")
	if !strings.Contains(stderr, "Removal cancelled") {
		t.Errorf("stderr = %q", stderr)
	}

	useScript(&scriptedPrompter{confirms: []bool{true}})
	env.mustRun(t, "remove", "b")

	_, stderr = env.mustRun(t, "remove", "a", "--force")
	if !strings.Contains(stderr, "no profile is current now") {
		t.Errorf("stderr = %q", stderr)
	}

	out := env.listJSON(t)
	if out.Total != 0 || out.Current != "" {
		t.Errorf("after removals: %+v", out)
	}

	if _, _, err := env.run(t, "remove", "a", "--force"); !config.IsNotFound(err) {
		t.Errorf("second remove error = %v", err)
	}
	if _, _, err := env.run(t, "remove", "no", "--force"); !config.IsValidation(err) {
		t.Errorf("remove builtin with --force error = %v, want validation error", err)
	}
	isInteractive = func() bool { return false }
	if _, _, err := env.run(t, "remove", "no"); !config.IsValidation(err) {
		t.Errorf("remove builtin without a terminal error = %v, want validation error before any prompt", err)
	}
}

func TestExportCommand(t *testing.T) {
	env := setupCLITest(t)

	if _, _, err := env.run(t, "export"); !config.IsValidation(err) {
		t.Errorf("export without current profile error = %v", err)
	}

	env.mustRun(t, "add", "work", "--url", "https://proxy.example.com", "--key", "sk-work", "--smallmodel", "claude-small")

	stdout, _ := env.mustRun(t, "export", "--shell", "fish", "--no-comments")
	want := "set -x ANTHROPIC_BASE_URL \"https://proxy.example.com/\"\n" +
		"set -x ANTHROPIC_API_KEY \"sk-work\"\n" +
		"set -x ANTHROPIC_SMALL_FAST_MODEL \"claude-small\"\n"
	if stdout != want {
		t.Errorf("fish export = %q, want %q", stdout, want)
	}

	stdout, _ = env.mustRun(t, "export", "--name", "work", "--prefix", "CUSTOM_")
	for _, want := range []string{"# Profile: work", "export CUSTOM_BASE_URL=\"https://proxy.example.com/\""} {
		if !strings.Contains(stdout, want) {
			t.Errorf("bash export missing %q:\n%s", want, stdout)
		}
	}

	if _, _, err := env.run(t, "export", "--shell", "cmd"); !config.IsValidation(err) {
		t.Errorf("unknown shell error = %v", err)
	}

	target := filepath.Join(t.TempDir(), "work.env")
	stdout, _ = env.mustRun(t, "export", "--shell", "dotenv", "-o", target)
	if stdout != "" {
		t.Errorf("stdout = %q, want nothing when writing a file", stdout)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("export file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("export file mode = %v, want 0600", info.Mode().Perm())
	}
	data, _ := os.ReadFile(target)
	if !strings.Contains(string(data), `ANTHROPIC_API_KEY="sk-work"`) {
		t.Errorf("dotenv file = %q", data)
	}
}

func TestEditCommand(t *testing.T) {
	env := setupCLITest(t)
	env.mustRun(t, "add", "work", "--url", "https://proxy.example.com", "--key", "sk-work", "--bigmodel", "big")

	env.mustRun(t, "edit", "work", "--name", "work-eu", "--tags", "eu,team", "--disable", "--bigmodel", "")

	out := env.listJSON(t)
	if out.Total != 1 || out.Current != "work-eu" {
		t.Fatalf("after rename: %+v", out)
	}
	p := out.Profiles[0]
	if p.IsActive || p.BigModel != "" || strings.Join(p.Tags, ",") != "eu,team" {
		t.Errorf("edited profile = %+v", p)
	}
	if p.BaseURL != "https://proxy.example.com/" {
		t.Errorf("unchanged field BaseURL = %q", p.BaseURL)
	}

	env.mustRun(t, "edit", "work-eu", "--enable", "--auth-token", "tok-new")
	p = env.listJSON(t).Profiles[0]
	if !p.IsActive || p.APIKey != "" || p.AuthToken == "" {
		t.Errorf("after enable + token: %+v", p)
	}

	if _, _, err := env.run(t, "edit", "work-eu"); err == nil || !strings.Contains(err.Error(), "no changes") {
		t.Errorf("edit without changes error = %v", err)
	}
	if _, _, err := env.run(t, "edit", "work-eu", "--enable", "--disable"); err == nil {
		t.Error("--enable and --disable together should fail")
	}
	if _, _, err := env.run(t, "edit", "work-eu", "--url", "not a url"); !config.IsValidation(err) {
		t.Errorf("invalid url error = %v", err)
	}
	if _, _, err := env.run(t, "edit", "no", "--desc", "x"); !config.IsValidation(err) {
		t.Errorf("editing builtin error = %v", err)
	}
}

func TestEditInteractive(t *testing.T) {
	env := setupCLITest(t)
	env.mustRun(t, "add", "work", "--url", "https://proxy.example.com", "--key", "sk-work")

	// name, url, description, tags, big model, small model
	useScript(&scriptedPrompter{
		answers:  []string{"", "https://new.example.com", "Edited", "", "", ""},
		secrets:  []string{""},
		confirms: []bool{true},
	})
	env.mustRun(t, "edit", "work")

	p := env.listJSON(t).Profiles[0]
	if p.Name != "work" || p.BaseURL != "https://new.example.com/" || p.Description != "Edited" {
		t.Errorf("interactive edit result = %+v", p)
	}
	if p.APIKey != "****" {
		t.Errorf("credential should be kept, got %q", p.APIKey)
	}
}

func TestSearchCommand(t *testing.T) {
	env := setupCLITest(t)
	env.mustRun(t, "add", "work", "--url", "https://a.example.com", "--key", "sk-a", "-t", "eu")
	env.mustRun(t, "add", "home", "--url", "https://b.example.com", "--key", "sk-b", "-d", "Personal EU relay")

	stdout, _ := env.mustRun(t, "search", "EU")
	if !strings.Contains(stdout, "work") || !strings.Contains(stdout, "home") {
		t.Errorf("search output = %s", stdout)
	}

	stdout, _ = env.mustRun(t, "search", "eu", "--fields", "tags")
	if !strings.Contains(stdout, "work") || strings.Contains(stdout, "home") {
		t.Errorf("tag search output = %s", stdout)
	}

	_, stderr := env.mustRun(t, "search", "nothing-matches")
	if !strings.Contains(stderr, "No profiles match") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestToggleAndInfo(t *testing.T) {
	env := setupCLITest(t)
	env.mustRun(t, "add", "work", "--url", "https://a.example.com", "--key", "sk-a", "-t", "eu")
	env.mustRun(t, "add", "home", "--url", "https://b.example.com", "--key", "sk-b", "-t", "eu")

	_, stderr := env.mustRun(t, "toggle", "home")
	if !strings.Contains(stderr, "'home' is now disabled") {
		t.Errorf("stderr = %q", stderr)
	}

	stdout, _ := env.mustRun(t, "info")
	for _, want := range []string{"Total: 2", "Enabled: 1", "Disabled: 1", "Current: work", "eu: 2", env.configPath} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stats missing %q:\n%s", want, stdout)
		}
	}

	stdout, _ = env.mustRun(t, "info", "home")
	if !strings.Contains(stdout, "Status: disabled") || strings.Contains(stdout, "(current)") {
		t.Errorf("info home = %s", stdout)
	}

	stdout, _ = env.mustRun(t, "info", "no")
	if !strings.Contains(stdout, "no") {
		t.Errorf("info no = %s", stdout)
	}

	if _, _, err := env.run(t, "toggle", "no"); !config.IsValidation(err) {
		t.Errorf("toggle builtin error = %v", err)
	}
}

func TestBackupCommand(t *testing.T) {
	env := setupCLITest(t)
	env.mustRun(t, "add", "work", "--url", "https://a.example.com", "--key", "sk-a")

	stdout, _ := env.mustRun(t, "backup")
	path := strings.TrimSpace(stdout)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backup %q: %v", path, err)
	}

	env.mustRun(t, "add", "home", "--url", "https://b.example.com", "--key", "sk-b")

	if _, _, err := env.run(t, "backup", filepath.Base(path)); err == nil {
		t.Error("a backup file without --restore should fail")
	}
	if _, _, err := env.run(t, "backup", "--restore", filepath.Base(path)); err == nil {
		t.Error("restore without --force outside a terminal should fail")
	}

	_, stderr := env.mustRun(t, "backup", "--restore", "--force", filepath.Base(path))
	if !strings.Contains(stderr, "Configuration restored from "+filepath.Base(path)) {
		t.Errorf("stderr = %q", stderr)
	}
	if out := env.listJSON(t); out.Total != 1 || out.Profiles[0].Name != "work" {
		t.Errorf("after restore: %+v", out.Profiles)
	}

	if _, _, err := env.run(t, "backup", "--restore", "--force", "config.toml.backup-missing"); err == nil {
		t.Error("restoring a missing backup should fail")
	}
	env.mustRun(t, "backup", "--restore", "--force")
}

func TestExportCommandLine(t *testing.T) {
	old := configPath
	defer func() { configPath = old }()

	configPath = ""
	if got := exportCommandLine("work"); got != "cw export --name work" {
		t.Errorf("exportCommandLine() = %q", got)
	}

	configPath = "/tmp/my dir/config.toml"
	if got := exportCommandLine("work"); got != "cw --config '/tmp/my dir/config.toml' export --name work" {
		t.Errorf("exportCommandLine() = %q", got)
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&config.ProfileNotFoundError{Name: "x"}, "Not found"},
		{&config.DuplicateProfileError{Name: "x"}, "Already exists"},
		{errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		printError(&buf, tt.err)
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("printError(%v) = %q, want %q", tt.err, buf.String(), tt.want)
		}
	}
}
