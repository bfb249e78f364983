package config

import "errors"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateImport() error {
	if c.Import.MatchThreshold < 0 || c.Import.MatchThreshold >= 1 {
		return errors.New("import.match_threshold must be in [0, 1)")
	}
	return nil
}
