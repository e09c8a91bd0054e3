package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/modkit/pkg/store"
)

var errNotSet = errors.New("value not set")

func (c *cli) runGet(cmd *cobra.Command, args []string) error {
	id := args[0]
	return c.withStore(cmd, func(ctx context.Context, st store.Store) error {
		data, found, err := st.Read(ctx, store.EnabledKey(id))
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not set (feature default applies)\n", id)
			return nil
		}
		var enabled bool
		if err := json.Unmarshal(data, &enabled); err != nil {
			return fmt.Errorf("corrupt enabled flag for %s: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, onOff(enabled))
		return nil
	})
}

func (c *cli) runSetEnabled(enabled bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id := args[0]
		return c.withStore(cmd, func(ctx context.Context, st store.Store) error {
			data, _ := json.Marshal(enabled)
			if err := st.Write(ctx, store.EnabledKey(id), data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (applies on next start)\n", id, onOff(enabled))
			return nil
		})
	}
}

func (c *cli) runSettingGet(cmd *cobra.Command, args []string) error {
	id, name := args[0], args[1]
	return c.withStore(cmd, func(ctx context.Context, st store.Store) error {
		data, found, err := st.Read(ctx, store.SettingKey(id, name))
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s/%s: %w", id, name, errNotSet)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	})
}

func (c *cli) runSettingSet(cmd *cobra.Command, args []string) error {
	id, name, raw := args[0], args[1], args[2]
	if !json.Valid([]byte(raw)) {
		return fmt.Errorf("value for %s/%s is not valid JSON: %s", id, name, raw)
	}
	return c.withStore(cmd, func(ctx context.Context, st store.Store) error {
		return st.Write(ctx, store.SettingKey(id, name), []byte(raw))
	})
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
