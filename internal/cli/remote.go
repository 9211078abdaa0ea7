package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"hdrbar/internal/rpc"
	"hdrbar/pkg/types"
)

const remoteTimeout = 10 * time.Second

func newRemoteCmd(v *viper.Viper) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Control a running hdrbar over JSON-RPC",
	}
	cmd.PersistentFlags().StringVar(&url, "url", "", "server URL, ws://<rpc.listen>/rpc by default")

	// connect opens a client to the server given by --url or rpc.listen
	connect := func(ctx context.Context, onEvent rpc.EventHandler) (*rpc.Client, error) {
		target := url
		if target == "" {
			listen := v.GetString("rpc.listen")
			if listen == "" {
				return nil, errors.New("no server: set --url or rpc.listen")
			}
			if strings.HasPrefix(listen, ":") {
				listen = "localhost" + listen
			}
			target = "ws://" + listen + "/rpc"
		}
		return rpc.Connect(ctx, target, onEvent)
	}

	// call runs fn against a connected client with a timeout
	call := func(cmd *cobra.Command, fn func(ctx context.Context, c *rpc.Client) error) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
		defer cancel()

		c, err := connect(ctx, nil)
		if err != nil {
			return err
		}
		defer c.Close()
		return fn(ctx, c)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "order",
			Short: "Print the display order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return call(cmd, func(ctx context.Context, c *rpc.Client) error {
					order, err := c.Order(ctx)
					if err != nil {
						return err
					}
					return printOrder(cmd.OutOrStdout(), order)
				})
			},
		},
		&cobra.Command{
			Use:   "set-order INDEX...",
			Short: "Replace the display order",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				order, err := parseInts(args)
				if err != nil {
					return err
				}
				return call(cmd, func(ctx context.Context, c *rpc.Client) error {
					order, err := c.SetOrder(ctx, order)
					if err != nil {
						return err
					}
					return printOrder(cmd.OutOrStdout(), order)
				})
			},
		},
		&cobra.Command{
			Use:   "move COLUMN POSITION",
			Short: "Move a column to a display position",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				nums, err := parseInts(args)
				if err != nil {
					return err
				}
				return call(cmd, func(ctx context.Context, c *rpc.Client) error {
					order, err := c.MoveColumn(ctx, nums[0], nums[1])
					if err != nil {
						return err
					}
					return printOrder(cmd.OutOrStdout(), order)
				})
			},
		},
		newRemoteScrollCmd(call),
		&cobra.Command{
			Use:   "layout",
			Short: "Print the current layout as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return call(cmd, func(ctx context.Context, c *rpc.Client) error {
					layout, err := c.Layout(ctx)
					if err != nil {
						return err
					}
					return yaml.NewEncoder(cmd.OutOrStdout()).Encode(layout)
				})
			},
		},
		newRemoteHistoryCmd(call),
		&cobra.Command{
			Use:   "watch",
			Short: "Print header notifications as they happen",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				out := cmd.OutOrStdout()
				c, err := connect(ctx, func(rec types.EventRecord) {
					fmt.Fprintln(out, formatRecord(rec))
				})
				if err != nil {
					return err
				}
				defer c.Close()

				<-ctx.Done()
				return nil
			},
		},
	)
	return cmd
}

type remoteCall func(cmd *cobra.Command, fn func(ctx context.Context, c *rpc.Client) error) error

func newRemoteScrollCmd(call remoteCall) *cobra.Command {
	var (
		delta  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "scroll",
		Short: "Scroll the header by --delta cells or to --offset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := types.ScrollParams{Delta: delta}
			if cmd.Flags().Changed("offset") {
				params.Offset = &offset
			}
			return call(cmd, func(ctx context.Context, c *rpc.Client) error {
				got, err := c.Scroll(ctx, params)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), got)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&delta, "delta", 0, "cells to scroll, positive reveals columns on the left")
	cmd.Flags().IntVar(&offset, "offset", 0, "absolute scroll offset")
	return cmd
}

func newRemoteHistoryCmd(call remoteCall) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent header notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(cmd, func(ctx context.Context, c *rpc.Client) error {
				records, err := c.History(ctx, limit)
				if err != nil {
					return err
				}
				for _, rec := range records {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), formatRecord(rec)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of records, 0 for all")
	return cmd
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", arg)
		}
		out[i] = n
	}
	return out, nil
}

func printOrder(w io.Writer, order []int) error {
	parts := make([]string, len(order))
	for i, idx := range order {
		parts[i] = strconv.Itoa(idx)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

func formatRecord(rec types.EventRecord) string {
	text := fmt.Sprintf("%s %-22s column=%d", rec.Timestamp.Format("15:04:05.000"), rec.Kind, rec.Column)
	if rec.Width != 0 {
		text += fmt.Sprintf(" width=%d", rec.Width)
	}
	if rec.Kind == "end_reorder" {
		text += fmt.Sprintf(" position=%d", rec.NewOrder)
	}
	return text + " " + rec.Verdict
}
