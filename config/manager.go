package config

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"claudewarp/config/models"
	"claudewarp/config/storage"
	syncpkg "claudewarp/config/sync"
	"claudewarp/config/validation"
	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// timestampFormat is fixed width so stored timestamps sort as strings
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Keys of the free-form settings table that the manager honours
const (
	SettingMaxBackups = "max_backups"
	SettingAutoBackup = "auto_backup"
)

// Manager owns the profile collection and the current pointer. It holds an
// in-memory copy of the config file and writes it back after every mutation.
type Manager struct {
	configPath string
	mu         sync.Mutex

	version  string
	settings map[string]any
	profiles *models.ProfileSet
	current  string

	validator  *validation.Validator
	external   syncpkg.ExternalConfig
	backups    *storage.BackupManager
	legacyPath string
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithExternalConfig sets the downstream configuration cleared on a switch
// to the builtin profile and updated on a switch to a named one
func WithExternalConfig(ec syncpkg.ExternalConfig) Option {
	return func(m *Manager) {
		m.external = ec
	}
}

// WithBackups overrides the backup policy read from the settings table
func WithBackups(bm *storage.BackupManager) Option {
	return func(m *Manager) {
		m.backups = bm
	}
}

// WithLegacyMigration moves a config file from oldPath to the manager's path
// when only the old one exists
func WithLegacyMigration(oldPath string) Option {
	return func(m *Manager) {
		m.legacyPath = oldPath
	}
}

// NewManager loads the config file at configPath, creating it when absent
func NewManager(configPath string, opts ...Option) (*Manager, error) {
	if configPath == "" {
		return nil, validationErr("config_path", "config path cannot be empty")
	}

	m := &Manager{
		configPath: configPath,
		validator:  validation.NewValidator(),
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.legacyPath != "" && storage.ShouldMigrateConfig(m.legacyPath, configPath) {
		if err := storage.MigrateConfig(m.legacyPath, configPath); err != nil {
			m.logger.Warn("failed to migrate legacy config", zap.String("from", m.legacyPath), zap.Error(err))
		} else {
			m.logger.Info("migrated config from legacy location", zap.String("from", m.legacyPath), zap.String("to", configPath))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Path returns the path to the config file
func (m *Manager) Path() string {
	return m.configPath
}

// load replaces the in-memory state with the file contents. A missing file
// is created with defaults.
func (m *Manager) load() error {
	data, err := storage.Read(m.configPath)
	if errors.Is(err, storage.ErrNotExist) {
		m.reset(models.NewFile())
		m.logger.Debug("creating default config", zap.String("path", m.configPath))
		return m.save()
	}
	if err != nil {
		return err
	}

	file := models.NewFile()
	if len(bytes.TrimSpace(data)) > 0 {
		if _, err := toml.Decode(string(data), file); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	m.reset(file)
	return nil
}

func (m *Manager) reset(file *models.File) {
	m.version = file.Version
	if m.version == "" {
		m.version = models.CurrentVersion
	}
	m.settings = file.Settings
	if m.settings == nil {
		m.settings = map[string]any{}
	}

	records := make([]models.Record, 0, len(file.Proxies))
	for key, r := range file.Proxies {
		if key == models.BuiltinName {
			m.logger.Warn("ignoring stored entry with the reserved name", zap.String("name", key))
			continue
		}
		r.Name = key
		records = append(records, r)
	}
	// TOML tables are unordered; creation time restores insertion order
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].Name < records[j].Name
	})

	m.profiles = models.NewProfileSet()
	for _, r := range records {
		m.profiles.Put(models.FromRecord(r))
	}

	m.current = file.CurrentProxy
	if m.current == models.BuiltinName {
		m.current = ""
	}
	if m.current != "" && !m.profiles.Contains(m.current) {
		m.logger.Warn("current profile does not exist, clearing", zap.String("name", m.current))
		m.current = ""
	}
}

// save writes the in-memory state to disk. Caller must hold m.mu.
func (m *Manager) save() error {
	file := &models.File{
		Version:      m.version,
		CurrentProxy: m.current,
		Proxies:      make(map[string]models.Record, m.profiles.Len()),
		Settings:     m.settings,
	}
	for _, p := range m.profiles.All() {
		file.Proxies[p.Name] = models.ToRecord(p)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(file); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	opts := storage.WriteOptions{
		OnCleanupError: func(err error) {
			m.logger.Warn("failed to prune old backups", zap.Error(err))
		},
	}
	if m.autoBackup() {
		opts.Backups = m.backupManager()
	}
	if err := storage.AtomicWrite(m.configPath, buf.Bytes(), opts); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// mutate runs fn against the in-memory state and saves it. If fn or the save
// fails, the previous state is restored.
func (m *Manager) mutate(fn func() error) error {
	profiles := m.profiles.Copy()
	current := m.current

	err := fn()
	if err == nil {
		err = m.save()
	}
	if err != nil {
		m.profiles = profiles
		m.current = current
	}
	return err
}

func (m *Manager) autoBackup() bool {
	if v, ok := m.settings[SettingAutoBackup].(bool); ok {
		return v
	}
	return true
}

func (m *Manager) backupManager() *storage.BackupManager {
	if m.backups != nil {
		return m.backups
	}
	maxBackups := storage.DefaultBackupRetention
	if v, ok := m.settings[SettingMaxBackups].(int64); ok && v > 0 {
		maxBackups = int(v)
	}
	return storage.NewBackupManager(maxBackups)
}

func (m *Manager) timestamp() string {
	return m.now().UTC().Format(timestampFormat)
}

// prepare normalizes and validates a user profile
func (m *Manager) prepare(p models.Profile) (models.Profile, error) {
	p = m.validator.Normalize(p)
	if err := m.validator.ValidateProfile(p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// AddOption configures Add
type AddOption func(*addOptions)

type addOptions struct {
	makeCurrent bool
}

// MakeCurrent selects the new profile even when others already exist
func MakeCurrent() AddOption {
	return func(o *addOptions) {
		o.makeCurrent = true
	}
}

// Add stores a new profile. The first profile added becomes current.
func (m *Manager) Add(p models.Profile, opts ...AddOption) (models.Profile, error) {
	var o addOptions
	for _, opt := range opts {
		opt(&o)
	}

	p, err := m.prepare(p)
	if err != nil {
		return models.Profile{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profiles.Contains(p.Name) {
		return models.Profile{}, &DuplicateProfileError{Name: p.Name}
	}

	now := m.timestamp()
	p.CreatedAt, p.UpdatedAt = now, now

	err = m.mutate(func() error {
		first := m.profiles.Len() == 0
		m.profiles.Put(p)
		if first || o.makeCurrent {
			m.current = p.Name
		}
		return nil
	})
	if err != nil {
		return models.Profile{}, err
	}

	m.logger.Debug("profile added", zap.String("name", p.Name), zap.Bool("current", m.current == p.Name))
	return p.Clone(), nil
}

// Get returns the named profile, including the builtin
func (m *Manager) Get(name string) (models.Profile, error) {
	if name == models.BuiltinName {
		return models.Builtin(), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles.Get(name)
	if !ok {
		return models.Profile{}, &ProfileNotFoundError{Name: name}
	}
	return p, nil
}

// List returns the user profiles in insertion order followed by the builtin
func (m *Manager) List() *models.ProfileSet {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.list()
}

func (m *Manager) list() *models.ProfileSet {
	all := m.profiles.Copy()
	all.Put(models.Builtin())
	return all
}

// Search fields
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldTags        = "tags"
)

// SearchFields returns the fields Search matches by default
func SearchFields() []string {
	return []string{FieldName, FieldDescription, FieldTags}
}

// Search returns the profiles, builtin included, where query is a
// case-insensitive substring of any of the given fields
func (m *Manager) Search(query string, fields ...string) (*models.ProfileSet, error) {
	if len(fields) == 0 {
		fields = SearchFields()
	}
	for _, f := range fields {
		switch f {
		case FieldName, FieldDescription, FieldTags:
		default:
			return nil, validationErr("field", "unknown search field '%s' (expected name, description or tags)", f)
		}
	}

	needle := strings.ToLower(query)
	matches := func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}

	return m.List().Filter(func(p models.Profile) bool {
		for _, f := range fields {
			switch f {
			case FieldName:
				if matches(p.Name) {
					return true
				}
			case FieldDescription:
				if matches(p.Description) {
					return true
				}
			case FieldTags:
				for _, tag := range p.Tags {
					if matches(tag) {
						return true
					}
				}
			}
		}
		return false
	}), nil
}

// ProfileUpdate lists the fields to change; nil fields keep their value
type ProfileUpdate struct {
	BaseURL     *string
	APIKey      *string
	AuthToken   *string
	Description *string
	Tags        *[]string
	IsActive    *bool
	BigModel    *string
	SmallModel  *string
}

// IsEmpty reports whether the update changes nothing
func (u ProfileUpdate) IsEmpty() bool {
	return u.BaseURL == nil && u.APIKey == nil && u.AuthToken == nil &&
		u.Description == nil && u.Tags == nil && u.IsActive == nil &&
		u.BigModel == nil && u.SmallModel == nil
}

func (u ProfileUpdate) apply(p models.Profile) models.Profile {
	if u.BaseURL != nil {
		p.BaseURL = *u.BaseURL
	}
	p.Credential = p.Credential.Merge(u.APIKey, u.AuthToken)
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Tags != nil {
		p.Tags = append([]string{}, (*u.Tags)...)
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
	if u.BigModel != nil {
		p.BigModel = *u.BigModel
	}
	if u.SmallModel != nil {
		p.SmallModel = *u.SmallModel
	}
	return p
}

// Update changes the given fields of a user profile
func (m *Manager) Update(name string, u ProfileUpdate) (models.Profile, error) {
	if name == models.BuiltinName {
		return models.Profile{}, validationErr("name", "the built-in profile '%s' cannot be modified", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.profiles.Get(name)
	if !ok {
		return models.Profile{}, &ProfileNotFoundError{Name: name}
	}

	p, err := m.prepare(u.apply(old))
	if err != nil {
		return models.Profile{}, err
	}
	p.UpdatedAt = m.timestamp()

	if err := m.mutate(func() error {
		m.profiles.Put(p)
		return nil
	}); err != nil {
		return models.Profile{}, err
	}

	m.logger.Debug("profile updated", zap.String("name", name))
	if m.current == name {
		m.applyExternal(p)
	}
	return p.Clone(), nil
}

// Rename moves a profile to a new name, applying u on the way. The current
// pointer follows. Nothing changes if any check fails.
func (m *Manager) Rename(oldName, newName string, u ProfileUpdate) (models.Profile, error) {
	if oldName == models.BuiltinName {
		return models.Profile{}, validationErr("name", "the built-in profile '%s' cannot be renamed", oldName)
	}
	if newName == oldName {
		return m.Update(oldName, u)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.profiles.Get(oldName)
	if !ok {
		return models.Profile{}, &ProfileNotFoundError{Name: oldName}
	}

	renamed := u.apply(old)
	renamed.Name = newName
	p, err := m.prepare(renamed)
	if err != nil {
		return models.Profile{}, err
	}
	if m.profiles.Contains(newName) {
		return models.Profile{}, &DuplicateProfileError{Name: newName}
	}

	// The entry moves to the end of the collection, so it also gets a new
	// creation time to keep that position after a reload.
	now := m.timestamp()
	p.CreatedAt, p.UpdatedAt = now, now

	wasCurrent := m.current == oldName
	if err := m.mutate(func() error {
		m.profiles.Delete(oldName)
		m.profiles.Put(p)
		if wasCurrent {
			m.current = newName
		}
		return nil
	}); err != nil {
		return models.Profile{}, err
	}

	m.logger.Debug("profile renamed", zap.String("from", oldName), zap.String("to", newName))
	if wasCurrent {
		m.applyExternal(p)
	}
	return p.Clone(), nil
}

// Remove deletes a user profile. Removing the current profile leaves no
// profile selected.
func (m *Manager) Remove(name string) error {
	if name == models.BuiltinName {
		return validationErr("name", "the built-in profile '%s' cannot be removed", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.profiles.Contains(name) {
		return &ProfileNotFoundError{Name: name}
	}

	wasCurrent := m.current == name
	if err := m.mutate(func() error {
		m.profiles.Delete(name)
		if wasCurrent {
			m.current = ""
		}
		return nil
	}); err != nil {
		return err
	}

	m.logger.Debug("profile removed", zap.String("name", name), zap.Bool("was_current", wasCurrent))
	return nil
}

// Current returns the profile named by the current pointer. The second
// result is false when no profile is selected, which is also the state
// after switching to the builtin.
func (m *Manager) Current() (models.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == "" {
		return models.Profile{}, false
	}
	return m.profiles.Get(m.current)
}

// CurrentName returns the current profile name, or "" when none is selected
func (m *Manager) CurrentName() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}

// Switch selects a profile. Switching to the builtin clears the pointer and
// the external configuration; whether that clear succeeded is logged.
func (m *Manager) Switch(name string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name == models.BuiltinName {
		if err := m.mutate(func() error {
			m.current = ""
			return nil
		}); err != nil {
			return models.Profile{}, err
		}

		if m.external != nil {
			if cleared := m.external.Clear(); cleared {
				m.logger.Info("external configuration cleared")
			} else {
				m.logger.Warn("external configuration could not be cleared")
			}
		}
		return models.Builtin(), nil
	}

	p, ok := m.profiles.Get(name)
	if !ok {
		return models.Profile{}, &ProfileNotFoundError{Name: name}
	}

	if err := m.mutate(func() error {
		m.current = name
		return nil
	}); err != nil {
		return models.Profile{}, err
	}

	m.logger.Debug("switched profile", zap.String("name", name))
	m.applyExternal(p)
	return p, nil
}

// applyExternal mirrors p to the external configuration. Failures are logged
// and never undo the switch.
func (m *Manager) applyExternal(p models.Profile) {
	if m.external == nil {
		return
	}
	if err := m.external.Apply(p); err != nil {
		m.logger.Warn("failed to update external configuration", zap.String("name", p.Name), zap.Error(err))
	}
}

// ToggleActive flips the enabled flag of a user profile
func (m *Manager) ToggleActive(name string) (models.Profile, error) {
	if name == models.BuiltinName {
		return models.Profile{}, validationErr("name", "the built-in profile '%s' cannot be modified", name)
	}

	m.mu.Lock()
	p, ok := m.profiles.Get(name)
	m.mu.Unlock()
	if !ok {
		return models.Profile{}, &ProfileNotFoundError{Name: name}
	}

	active := !p.IsActive
	return m.Update(name, ProfileUpdate{IsActive: &active})
}

// Validate checks a stored profile and describes the result
func (m *Manager) Validate(name string) (bool, string) {
	if name == models.BuiltinName {
		return true, "built-in profile"
	}

	p, err := m.Get(name)
	if err != nil {
		return false, err.Error()
	}
	if err := m.validator.ValidateProfile(p); err != nil {
		return false, err.Error()
	}
	return true, "profile is valid"
}

// Stats summarizes the user profiles
type Stats struct {
	Total    int            `json:"total" yaml:"total"`
	Active   int            `json:"active" yaml:"active"`
	Inactive int            `json:"inactive" yaml:"inactive"`
	Current  string         `json:"current,omitempty" yaml:"current,omitempty"`
	Tags     map[string]int `json:"tags" yaml:"tags"`
}

// Stats counts user profiles by state and tag
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{Current: m.current, Tags: map[string]int{}}
	for _, p := range m.profiles.All() {
		s.Total++
		if p.IsActive {
			s.Active++
		} else {
			s.Inactive++
		}
		for _, tag := range p.Tags {
			s.Tags[tag]++
		}
	}
	return s
}

// Backup snapshots the config file and returns the backup path
func (m *Manager) Backup() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !storage.FileExists(m.configPath) {
		if err := m.save(); err != nil {
			return "", err
		}
	}

	bm := m.backupManager()
	path, err := bm.CreateBackup(m.configPath)
	if err != nil {
		return "", err
	}
	if err := bm.CleanupOldBackups(m.configPath); err != nil {
		m.logger.Warn("failed to prune old backups", zap.Error(err))
	}
	return path, nil
}

// Restore replaces the config file with a backup, the most recent one when
// backupPath is empty, and reloads it. It returns the backup used.
func (m *Manager) Restore(backupPath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	decodes := func(data []byte) error {
		if _, err := toml.Decode(string(data), models.NewFile()); err != nil {
			return fmt.Errorf("failed to parse backup: %w", err)
		}
		return nil
	}

	bm := m.backupManager()
	var err error
	if backupPath == "" {
		backupPath, err = bm.RestoreFromLatestBackup(m.configPath, decodes)
	} else {
		err = bm.RestoreFromBackup(m.configPath, backupPath, decodes)
	}
	if err != nil {
		return "", err
	}

	if err := m.load(); err != nil {
		return "", err
	}
	m.logger.Info("config restored", zap.String("backup", backupPath))

	if p, ok := m.profiles.Get(m.current); ok {
		m.applyExternal(p)
	}
	return backupPath, nil
}

// Reload discards the in-memory state and reads the config file again
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.load()
}

// Save writes the in-memory state to the config file
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.save()
}
