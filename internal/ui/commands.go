package ui

import (
	"context"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
)

// startSyncCmd launches a sync pass in its own goroutine. Progress updates
// and the final result arrive over the returned channel, which the caller
// must drain with listenForSync. Cancelling the context unblocks every send,
// so the goroutine never outlives a quit mid-pass.
func startSyncCmd(ctx context.Context, sync Synchronizer) (syncStreamChan, tea.Cmd) {
	ch := make(syncStreamChan)
	send := func(msg tea.Msg) {
		select {
		case ch <- msg:
		case <-ctx.Done():
		}
	}
	return ch, func() tea.Msg {
		go func() {
			defer close(ch)
			records, err := sync.Sync(ctx, func(loaded int) {
				send(SyncProgressMsg{Loaded: loaded})
			})
			if err != nil {
				send(SyncErrorMsg{Err: err})
				return
			}
			send(SyncDoneMsg{Records: records})
		}()
		return <-ch
	}
}

// listenForSync returns a tea.Cmd that reads the next message from the sync
// channel. A closed channel ends the stream.
func listenForSync(ch syncStreamChan) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// openBrowserCmd returns a command that opens a URL in the default browser.
func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default: // linux, freebsd, etc.
			cmd = exec.Command("xdg-open", url)
		}
		_ = cmd.Start()
		return nil
	}
}
