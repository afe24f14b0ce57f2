package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. KSECRET_OUTPUT.
const EnvPrefix = "KSECRET"

// Keys shared by the config file, environment and flags.
const (
	KeyKubeconfig     = "kubeconfig"
	KeyContext        = "context"
	KeyOutput         = "output"
	KeyNoColor        = "no_color"
	KeyAccessible     = "accessible"
	KeyVerbose        = "verbose"
	KeyRequestTimeout = "request_timeout"
	KeyCaseSensitive  = "case_sensitive"
)

// flagNames maps config keys to their flag names where the two differ.
var flagNames = map[string]string{
	KeyNoColor:        "no-color",
	KeyRequestTimeout: "request-timeout",
	KeyCaseSensitive:  "case-sensitive",
}

// Resolve merges file, environment and flags. Only flags the user actually
// set override the lower layers.
func Resolve(file *Config, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyKubeconfig, file.Kubeconfig)
	v.SetDefault(KeyContext, file.Context)
	v.SetDefault(KeyOutput, file.Output)
	v.SetDefault(KeyNoColor, file.NoColor)
	v.SetDefault(KeyAccessible, file.Accessible)
	v.SetDefault(KeyVerbose, file.Verbose)
	v.SetDefault(KeyRequestTimeout, file.RequestTimeout)
	v.SetDefault(KeyCaseSensitive, file.CaseSensitive)

	if flags != nil {
		for _, key := range []string{KeyKubeconfig, KeyContext, KeyOutput, KeyNoColor, KeyAccessible, KeyVerbose, KeyRequestTimeout, KeyCaseSensitive} {
			name := key
			if n, ok := flagNames[key]; ok {
				name = n
			}
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Kubeconfig:     v.GetString(KeyKubeconfig),
		Context:        v.GetString(KeyContext),
		Output:         v.GetString(KeyOutput),
		NoColor:        v.GetBool(KeyNoColor),
		Accessible:     v.GetBool(KeyAccessible),
		Verbose:        v.GetBool(KeyVerbose),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
		CaseSensitive:  v.GetBool(KeyCaseSensitive),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
