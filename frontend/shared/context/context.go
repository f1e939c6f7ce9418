package context

import (
	"context"

	"teamdash/team"
)

type workspaceKey struct{}

type viewerKey struct{}

// Viewer is the signed-in person shown in the top navigation. It is display-only.
type Viewer struct {
	Name string
	Role string
}

func NewContextWithWorkspace(ctx context.Context, ws *team.Workspace) context.Context {
	return context.WithValue(ctx, workspaceKey{}, ws)
}

func GetWorkspaceFromContext(ctx context.Context) (*team.Workspace, bool) {
	ws, ok := ctx.Value(workspaceKey{}).(*team.Workspace)
	return ws, ok && ws != nil
}

func NewContextWithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

func GetViewerFromContext(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey{}).(Viewer)
	return v
}
