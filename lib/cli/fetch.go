package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/ether/etherdelta/lib/cache"
	"github.com/ether/etherdelta/lib/client"
	"github.com/ether/etherdelta/lib/resolver"
	"github.com/ether/etherdelta/lib/resource"
	"github.com/ether/etherdelta/lib/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type fetchOptions struct {
	server    string
	out       string
	noDelta   bool
	namespace string
}

func (a *app) fetchCommand() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch <url|/name/version/file>",
		Short: "Resolve a resource through the local cache",
		Long: `Resolve a resource the way a client would: from the cache if present,
as a delta against a cached version of the same file if possible, and in
full otherwise. The resolved content is written to --out or stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fetch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.server, "server", "s", "", "Server base URL (defaults to client.server)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the content to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.noDelta, "no-delta", false, "Never ask for a delta")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Cache namespace (defaults to client.cacheNamespace)")
	return cmd
}

// splitTarget separates an absolute URL into the server it names and the
// resource path. Anything else is a path on the configured server.
func splitTarget(target, fallbackServer string) (string, resource.Identity, error) {
	id, err := resource.ParseURL(target)
	if err != nil {
		return "", resource.Identity{}, err
	}

	if u, err := url.Parse(target); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Scheme + "://" + u.Host, id, nil
	}
	if fallbackServer == "" {
		return "", resource.Identity{}, errors.New("no server given; pass a full URL or --server")
	}
	return fallbackServer, id, nil
}

func (a *app) fetch(cmd *cobra.Command, target string, opts *fetchOptions) error {
	clientSettings := a.settings.Client
	serverURL := opts.server
	if serverURL == "" {
		serverURL = clientSettings.Server
	}
	serverURL, id, err := splitTarget(target, serverURL)
	if err != nil {
		return err
	}

	cacheStore, err := utils.GetCacheStore(a.settings, a.logger)
	if err != nil {
		return fmt.Errorf("error opening client cache: %w", err)
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			a.logger.Warnf("Error closing client cache: %v", err)
		}
	}()

	namespace := opts.namespace
	if namespace == "" {
		namespace = clientSettings.CacheNamespace
	}

	fetcher, err := client.NewHTTPFetcher(serverURL, client.Options{
		Timeout: clientSettings.Timeout(),
		Logger:  a.logger,
	})
	if err != nil {
		return err
	}

	r := resolver.New(cache.NewStoreCache(namespace, cacheStore), fetcher, resolver.Config{
		DisableDifferential: opts.noDelta,
	}, a.logger)

	result, err := r.Resolve(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("error resolving %s: %w", id, err)
	}

	if result.Source == resolver.SourceDifferential {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s resolved from %s via delta from %s (%d bytes)\n", id, result.Source, result.BaseVersion, len(result.Content))
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s resolved from %s (%d bytes)\n", id, result.Source, len(result.Content))
	}

	if opts.out == "" {
		_, err = cmd.OutOrStdout().Write(result.Content)
		return err
	}
	return afero.WriteFile(afero.NewOsFs(), opts.out, result.Content, 0o644)
}
