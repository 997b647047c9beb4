package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/taskstore/internal/config"
)

// NewDogCommand creates the dog command.
func NewDogCommand(rootOpts *RootOptions) *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "dog",
		Short: "Fetch a random dog image URL through the API",
		Long: `Fetch a random dog image through the running server's /api/dog proxy
and print its URL.

Example:
  taskstore dog --api-url http://localhost:3000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, rootOpts)
			if err := rootOpts.bindFlags(cmd, map[string]string{"api-url": config.KeyAPIURL}); err != nil {
				return f.Fail(ErrCodeGeneric, ExitCommandError, "failed to bind flags", err)
			}
			c, err := rootOpts.apiClient(cmd, f)
			if err != nil {
				return err
			}

			img, err := c.Dog(cmd.Context())
			if err != nil {
				return apiFailure(f, err)
			}
			return f.Success(img, img.Message)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "base URL of the taskstore API")

	return cmd
}
