// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/codehelp/codehelp-tui/internal/export"
	"github.com/codehelp/codehelp-tui/internal/model"
	"github.com/codehelp/codehelp-tui/internal/router"
)

const exportUsage = "codehelp export ID [--format md|json] [-o PATH]"

func runExport(ctx context.Context, env *Env, args Args) error {
	id, err := projectArg(args, 0, exportUsage)
	if err != nil {
		return err
	}
	exporter, err := export.ForFormat(args.Format, nil)
	if err != nil {
		return &ValidationError{Field: "format", Value: args.Format, Reason: "must be md or json", Example: exportUsage}
	}
	if err := requireAuth(env, router.Chat(id)); err != nil {
		return err
	}

	history, err := env.Backend.GetProjectHistory(ctx, id)
	if err != nil {
		return checkAuth(env, err)
	}
	transcript := export.NewTranscript(projectByID(ctx, env, id), history)

	if args.Output == "-" {
		return export.Write(env.Stdout, transcript, exporter)
	}
	path, err := export.ToFile(transcript, exporter, args.Output)
	if err != nil {
		return NewCommandError("export", "write", "could not save the transcript", err)
	}

	if args.JSON {
		return OutputJSON(env.Stdout, "export", map[string]interface{}{
			"project_id": id,
			"path":       path,
			"exchanges":  len(history),
		})
	}
	if args.Quiet {
		fmt.Fprintln(env.Stdout, path)
		return nil
	}
	fmt.Fprintf(env.Stdout, "%s Exported %d questions to %s\n", SuccessStyle.Render("[OK]"), len(history), path)
	return nil
}

// projectByID looks up the project's name. The listing is best effort; the
// export proceeds with only the id when it fails.
func projectByID(ctx context.Context, env *Env, id int64) model.Project {
	p, found, err := lookupProject(ctx, env, id)
	if err != nil {
		env.logger().Debug("project lookup failed", zap.Int64("project_id", id), zap.Error(err))
	}
	if !found {
		return model.Project{ID: id}
	}
	return p
}
