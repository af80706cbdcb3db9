// Package config provides user configuration management for mallas.
//
// Settings live in a YAML file stored in the platform configuration
// directory:
//   - Linux: $XDG_CONFIG_HOME/mallas/config.yaml or $HOME/.config/mallas/config.yaml
//   - macOS: $HOME/.config/mallas/config.yaml
//   - Windows: %LOCALAPPDATA%\mallas\config.yaml
//
// A missing file is not an error: defaults are used. Keys omitted from the
// file keep their default values.
//
// # File Format
//
//	version: 1
//	backend:
//	  base_url: http://127.0.0.1:5000
//	  example_path: /api/example
//	  timeout: 10
//	  max_retries: 2
//	export:
//	  directory: ~/Descargas
//	discovery:
//	  timeout: 5
//	log:
//	  level: debug
//	  file: /tmp/mallas.log
//	servers:
//	  mallas-lab:
//	    nickname: Laboratorio
//	    url: http://192.168.1.20:5000
//
// # Usage Example
//
//	settings, err := config.LoadSettings()
//	if err != nil {
//	    return err
//	}
//	client := backend.NewClient(settings.Backend.BaseURL)
//	client.SetTimeout(settings.BackendTimeout())
//
// Writes are atomic (temporary file plus rename) and serialized by a
// package-level mutex.
package config
