package cli

import (
	"fmt"

	"github.com/ether/etherdelta/lib/cache"
	"github.com/ether/etherdelta/lib/utils"
	"github.com/spf13/cobra"
)

func (a *app) cacheCommand() *cobra.Command {
	var namespace string

	withCache := func(cmd *cobra.Command, fn func(c *cache.StoreCache) error) error {
		cacheStore, err := utils.GetCacheStore(a.settings, a.logger)
		if err != nil {
			return fmt.Errorf("error opening client cache: %w", err)
		}
		defer func() {
			if err := cacheStore.Close(); err != nil {
				a.logger.Warnf("Error closing client cache: %v", err)
			}
		}()
		ns := namespace
		if ns == "" {
			ns = a.settings.Client.CacheNamespace
		}
		return fn(cache.NewStoreCache(ns, cacheStore))
	}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the client cache",
	}
	cmd.PersistentFlags().StringVar(&namespace, "namespace", "", "Cache namespace (defaults to client.cacheNamespace)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached resources in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, func(c *cache.StoreCache) error {
				keys, err := c.Keys(cmd.Context())
				if err != nil {
					return err
				}
				for _, id := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), id.Path())
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every entry of the namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, func(c *cache.StoreCache) error {
				if err := c.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared namespace %s\n", c.Namespace())
				return nil
			})
		},
	})
	return cmd
}
