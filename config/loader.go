package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/cloudfoundry/netbackup/capture"
	"github.com/cloudfoundry/netbackup/platform"
)

const logTag = "netbackup"

type Logger interface {
	Debug(tag, msg string, args ...interface{})
	Warn(tag, msg string, args ...interface{})
}

type document struct {
	BackupRootDirectory string        `yaml:"backup_root_directory"`
	BackupDir           string        `yaml:"backup_dir"`
	DeviceGroups        yaml.MapSlice `yaml:"device_groups"`
}

// Load reads the YAML configuration at path. A missing file is not an error:
// the built-in default is returned and a warning is logged.
func Load(path string, logger Logger) (BackupConfiguration, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Warn(logTag, "Config file %s not found, using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return BackupConfiguration{}, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return BackupConfiguration{}, errors.Wrapf(err, "invalid config file %s", path)
	}

	for _, group := range cfg.Groups() {
		if !platform.Lookup(group.Type).Known {
			logger.Debug(logTag, "Device type %s of group %s is not a known platform, using generic CLI settings", group.Type, group.Name)
		}
	}

	return cfg, nil
}

// Parse decodes and validates a configuration document, keeping the groups in
// the order they are written.
func Parse(data []byte) (BackupConfiguration, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return BackupConfiguration{}, errors.Wrap(err, "failed to parse YAML")
	}

	root := doc.BackupRootDirectory
	if root == "" {
		root = doc.BackupDir
	}

	seen := map[string]bool{}
	var groups []DeviceGroup
	for _, item := range doc.DeviceGroups {
		name := fmt.Sprint(item.Key)
		if seen[name] {
			return BackupConfiguration{}, errors.Errorf("device group %s is defined more than once", name)
		}
		seen[name] = true

		group, err := decodeGroup(item.Value)
		if err != nil {
			return BackupConfiguration{}, errors.Wrapf(err, "failed to parse device group %s", name)
		}
		group.Name = name
		groups = append(groups, group)
	}

	cfg := New(root, groups...)
	if err := cfg.Validate(); err != nil {
		return BackupConfiguration{}, err
	}
	return cfg, nil
}

func decodeGroup(value interface{}) (DeviceGroup, error) {
	var group DeviceGroup
	bytes, err := yaml.Marshal(value)
	if err != nil {
		return group, err
	}
	err = yaml.UnmarshalStrict(bytes, &group)
	return group, err
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("device_type", func(fl validator.FieldLevel) bool {
		return capture.IsDirectoryName(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func (c BackupConfiguration) Validate() error {
	if len(c.order) == 0 {
		return errors.New("no device groups defined in the configuration")
	}

	for _, group := range c.Groups() {
		if group.Profile != "" {
			if _, err := platform.ProfileCommands(group.Profile); err != nil {
				return errors.Wrapf(err, "device group %s", group.Name)
			}
		}

		if err := validate.Struct(group); err != nil {
			return describeValidationError(group.Name, err)
		}
	}
	return nil
}

func describeValidationError(groupName string, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrapf(err, "device group %s", groupName)
	}

	var problems []string
	for _, fieldErr := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s failed '%s' validation", yamlName(fieldErr), fieldErr.Tag()))
	}
	return errors.Errorf("device group %s: %s", groupName, strings.Join(problems, ", "))
}

func yamlName(fieldErr validator.FieldError) string {
	switch fieldErr.StructField() {
	case "Addresses":
		return "devices"
	case "EnablePassword":
		return "enable_password"
	default:
		if strings.HasPrefix(fieldErr.StructField(), "Addresses[") {
			return "devices" + strings.TrimPrefix(fieldErr.StructField(), "Addresses")
		}
		return strings.ToLower(fieldErr.StructField())
	}
}
