package settings

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/viper"
)

// ConfigShow prints every registered key with its env var, current value and
// default.
func ConfigShow(w io.Writer) {
	fmt.Fprintf(w,
		"%-28s %-36s %-26v %-26v %s\n",
		"JSON KEY",
		"ENV VAR",
		"CURRENT",
		"DEFAULT",
		"DESCRIPTION",
	)

	for _, c := range Registry {
		fmt.Fprintf(w,
			"%-28s %-36s %-26v %-26v %s\n",
			c.Key,
			EnvVar(c.Key),
			viper.Get(c.Key),
			c.Default,
			c.Description,
		)
	}
}

func ConfigDump(w io.Writer) error {
	out, err := json.MarshalIndent(viper.AllSettings(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func ConfigEnv(w io.Writer) {
	fmt.Fprintf(w, "%-36s %s\n", "ENV VAR", "JSON KEY")

	for _, c := range Registry {
		fmt.Fprintf(w,
			"%-36s %s\n",
			EnvVar(c.Key),
			c.Key,
		)
	}
}

func ConfigGet(w io.Writer, key string) error {
	for _, c := range Registry {
		if c.Key == key {
			_, err := fmt.Fprintln(w, viper.Get(key))
			return err
		}
	}
	return fmt.Errorf("unknown config key: %s", key)
}

// ConfigInit prints a settings.json holding every default.
func ConfigInit(w io.Writer) error {
	out := map[string]any{}

	for _, c := range Registry {
		out[c.Key] = c.Default
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
