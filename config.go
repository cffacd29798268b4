package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"albumlabel/label"

	"gopkg.in/yaml.v3"
)

var configExtensions = []string{".json", ".yaml", ".yml"}

type FontSizes struct {
	Title int `json:"title" yaml:"title"`
	Count int `json:"count" yaml:"count"`
}

type LabelConfig struct {
	Name       string            `json:"name" yaml:"name"`
	SlotWidth  int               `json:"slot_width" yaml:"slot_width"`
	SlotHeight int               `json:"slot_height" yaml:"slot_height"`
	Grouping   string            `json:"grouping,omitempty" yaml:"grouping,omitempty"`
	View       string            `json:"view,omitempty" yaml:"view,omitempty"`
	FontSizes  FontSizes         `json:"font_sizes" yaml:"font_sizes"`
	Font       string            `json:"font,omitempty" yaml:"font,omitempty"`
	TitleBold  bool              `json:"title_bold,omitempty" yaml:"title_bold,omitempty"`
	Colors     map[string]string `json:"colors" yaml:"colors"`

	LabelBackgroundHeight int  `json:"label_background_height" yaml:"label_background_height"`
	IconSize              *int `json:"icon_size,omitempty" yaml:"icon_size,omitempty"`
	LeftMargin            *int `json:"left_margin,omitempty" yaml:"left_margin,omitempty"`
	TitleRightMargin      *int `json:"title_right_margin,omitempty" yaml:"title_right_margin,omitempty"`

	IconDir    string `json:"icon_dir,omitempty" yaml:"icon_dir,omitempty"`
	OutputDir  string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Workers    int    `json:"workers,omitempty" yaml:"workers,omitempty"`
	DateFormat string `json:"date_format,omitempty" yaml:"date_format,omitempty"`
}

type ConfigManager struct {
	configDir string
	configs   map[string]*LabelConfig
}

func NewConfigManager(configDir string) *ConfigManager {
	return &ConfigManager{
		configDir: configDir,
		configs:   make(map[string]*LabelConfig),
	}
}

func (cm *ConfigManager) LoadConfig(configName string) (*LabelConfig, error) {
	if config, exists := cm.configs[configName]; exists {
		return config, nil
	}

	var configFile string
	for _, ext := range configExtensions {
		candidate := filepath.Join(cm.configDir, configName+ext)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			break
		}
	}
	if configFile == "" {
		return nil, fmt.Errorf("config file not found: %s", filepath.Join(cm.configDir, configName+".json"))
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := parseConfig(data, filepath.Ext(configFile))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filepath.Base(configFile), err)
	}
	if config.Name == "" {
		config.Name = configName
	}

	cm.configs[configName] = config
	return config, nil
}

func parseConfig(data []byte, ext string) (*LabelConfig, error) {
	var config LabelConfig
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	}
	return &config, nil
}

func (cm *ConfigManager) ListConfigs() ([]string, error) {
	files, err := os.ReadDir(cm.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	seen := make(map[string]bool)
	var configs []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		ext := filepath.Ext(file.Name())
		for _, known := range configExtensions {
			if ext != known {
				continue
			}
			name := strings.TrimSuffix(file.Name(), ext)
			if !seen[name] {
				seen[name] = true
				configs = append(configs, name)
			}
		}
	}
	sort.Strings(configs)

	return configs, nil
}

// DefaultConfig is used when no config name is given.
func DefaultConfig() *LabelConfig {
	return &LabelConfig{Name: "default"}
}

func (config *LabelConfig) GetSlotWidth() int {
	if config.SlotWidth > 0 {
		return config.SlotWidth
	}
	return 320
}

func (config *LabelConfig) GetSlotHeight() int {
	if config.SlotHeight > 0 {
		return config.SlotHeight
	}
	return config.GetSlotWidth()
}

func (config *LabelConfig) GetTitleFontSize() int {
	if config.FontSizes.Title > 0 {
		return config.FontSizes.Title
	}
	return 20
}

func (config *LabelConfig) GetCountFontSize() int {
	if config.FontSizes.Count > 0 {
		return config.FontSizes.Count
	}
	return 18
}

func (config *LabelConfig) GetLabelBackgroundHeight() int {
	if config.LabelBackgroundHeight > 0 {
		return config.LabelBackgroundHeight
	}
	return 48
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func (config *LabelConfig) GetIconSize() int {
	return intOr(config.IconSize, 32)
}

func (config *LabelConfig) GetLeftMargin() int {
	return intOr(config.LeftMargin, 8)
}

func (config *LabelConfig) GetTitleRightMargin() int {
	return intOr(config.TitleRightMargin, 60)
}

func (config *LabelConfig) GetWorkers() int {
	if config.Workers > 0 {
		return config.Workers
	}
	return 4
}

func (config *LabelConfig) GetDateFormat() string {
	if config.DateFormat != "" {
		return config.DateFormat
	}
	return "2006-01-02"
}

func (config *LabelConfig) GetGrouping() label.GroupingMode {
	return label.ParseGroupingMode(config.Grouping)
}

// GetView defaults to the list layout for list grouping and the grid
// layout otherwise.
func (config *LabelConfig) GetView() label.ViewType {
	if config.View == "" && config.GetGrouping() == label.GroupingList {
		return label.ViewList
	}
	return label.ParseViewType(config.View)
}

func (config *LabelConfig) GetColor(key, fallback string) color.Color {
	if c, exists := config.Colors[key]; exists {
		return parseColor(c)
	}
	return parseColor(fallback)
}

// ToSpec builds the renderer spec. fontPath overrides the configured font.
func (config *LabelConfig) ToSpec(fontPath string) label.LabelSpec {
	return label.LabelSpec{
		TitleFontSize:         config.GetTitleFontSize(),
		CountFontSize:         config.GetCountFontSize(),
		TitleColor:            config.GetColor("title", "#ffffff"),
		CountColor:            config.GetColor("count", "#bdbdbd"),
		BackgroundColor:       config.GetColor("background", "#202020e6"),
		LabelBackgroundHeight: config.GetLabelBackgroundHeight(),
		IconSize:              config.GetIconSize(),
		LeftMargin:            config.GetLeftMargin(),
		TitleRightMargin:      config.GetTitleRightMargin(),
		FontPath:              fontPath,
		TitleBold:             config.TitleBold,
	}
}

// parseColor converts #rrggbb or #rrggbbaa to a colour, white when malformed
func parseColor(hexColor string) color.Color {
	hexColor = strings.TrimPrefix(hexColor, "#")
	if len(hexColor) != 6 && len(hexColor) != 8 {
		return color.RGBA{255, 255, 255, 255}
	}

	v, err := strconv.ParseUint(hexColor, 16, 32)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	if len(hexColor) == 6 {
		v = v<<8 | 0xff
	}

	a := uint8(v)
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), a}
}
