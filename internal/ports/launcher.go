package ports

import "context"

// ClientLauncher starts the game client for a login attempt. The actual
// credential entry (window focus, keystroke injection) lives outside this
// module; implementations only have to get the client process running.
type ClientLauncher interface {
	Launch(ctx context.Context, executable string, username, password string) error
}
