package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
	"github.com/dmitrijs2005/usermanager/internal/client/config"
	"github.com/dmitrijs2005/usermanager/internal/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const onlineCheckInterval = 5 * time.Second

type App struct {
	config  *config.Config
	client  client.Client
	session *models.PublicUser
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewUserManagerClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (app *App) setMode(mode Mode) {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.mode != mode {
		app.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Mode reports whether the server answered the last ping.
func (app *App) Mode() Mode {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.mode
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx, os.Stdin)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// StartOnlineStatusWatcher pings the server every interval and flips Mode
// when reachability changes. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.client.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}
