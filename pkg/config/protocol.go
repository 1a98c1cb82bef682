// Copyright 2025 Certen Protocol
//
// Protocol Configuration Loader
//
// Loads the block-production core's tunable protocol constants (batch
// and block size limits, minimum proof security level, prover timeouts)
// from a YAML file, with ${VAR_NAME} environment-variable substitution,
// the same mechanism the teacher's pkg/config/anchor_config.go used for
// its anchor settings.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Protocol holds the runtime-tunable protocol constants. Of the core,
// only LocalBlockProver (pkg/prover) takes a Protocol, and it enforces
// Limits.MaxOutputNotesPerBatch; pkg/batch and pkg/block take no config,
// and the block's batch-count limit is the domain.MaxBatchesPerBlock
// constant.
type Protocol struct {
	Limits ProtocolLimits `yaml:"limits"`
	Prover ProverSettings `yaml:"prover"`
}

// ProtocolLimits are the fixed protocol size limits named in spec.md §6.
type ProtocolLimits struct {
	MaxBatchesPerBlock   uint32 `yaml:"max_batches_per_block"`
	MaxInputNotesPerBatch  uint32 `yaml:"max_input_notes_per_batch"`
	MaxOutputNotesPerBatch uint32 `yaml:"max_output_notes_per_batch"`
	MaxAccountsPerBatch    uint32 `yaml:"max_accounts_per_batch"`
}

// ProverSettings configures the C9 zk-prover adapter.
type ProverSettings struct {
	MinProofSecurityLevel uint32   `yaml:"min_proof_security_level"`
	SetupTimeout          Duration `yaml:"setup_timeout"`
	ProveTimeout          Duration `yaml:"prove_timeout"`
}

// Default returns the protocol's baked-in defaults (spec.md §6:
// MAX_BATCHES_PER_BLOCK = 64; the other limits are powers of two chosen
// to keep a single batch well within one proof's constraint budget).
func Default() *Protocol {
	return &Protocol{
		Limits: ProtocolLimits{
			MaxBatchesPerBlock:     64,
			MaxInputNotesPerBatch:  1024,
			MaxOutputNotesPerBatch: 1024,
			MaxAccountsPerBatch:    256,
		},
		Prover: ProverSettings{
			MinProofSecurityLevel: 96,
			SetupTimeout:          Duration(30 * time.Second),
			ProveTimeout:          Duration(2 * time.Minute),
		},
	}
}

// Duration wraps time.Duration for YAML unmarshaling, identical in
// shape to the teacher's pkg/config Duration type.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// AsDuration returns the underlying time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

func substituteEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name := groups[1]
		fallback := groups[3]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return fallback
	})
}

// Load reads a Protocol configuration from a YAML file, substituting
// ${VAR_NAME} (optionally with a ${VAR_NAME:-fallback}) environment
// references before parsing, then fills any remaining zero-valued
// limits/prover settings from Default().
func Load(path string) (*Protocol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	expanded := substituteEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Protocol) applyDefaults() {
	defaults := Default()
	if c.Limits.MaxBatchesPerBlock == 0 {
		c.Limits.MaxBatchesPerBlock = defaults.Limits.MaxBatchesPerBlock
	}
	if c.Limits.MaxInputNotesPerBatch == 0 {
		c.Limits.MaxInputNotesPerBatch = defaults.Limits.MaxInputNotesPerBatch
	}
	if c.Limits.MaxOutputNotesPerBatch == 0 {
		c.Limits.MaxOutputNotesPerBatch = defaults.Limits.MaxOutputNotesPerBatch
	}
	if c.Limits.MaxAccountsPerBatch == 0 {
		c.Limits.MaxAccountsPerBatch = defaults.Limits.MaxAccountsPerBatch
	}
	if c.Prover.MinProofSecurityLevel == 0 {
		c.Prover.MinProofSecurityLevel = defaults.Prover.MinProofSecurityLevel
	}
	if c.Prover.SetupTimeout == 0 {
		c.Prover.SetupTimeout = defaults.Prover.SetupTimeout
	}
	if c.Prover.ProveTimeout == 0 {
		c.Prover.ProveTimeout = defaults.Prover.ProveTimeout
	}
}
