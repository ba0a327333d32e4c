package backend

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Edge-Works/EdgeNodeObserver/internal/configstore"
	"github.com/Edge-Works/EdgeNodeObserver/internal/events"
)

// stake id is backend-owned state; it is not one of the core config keys.
const keyStakeID = "stake_id"

// EdgeCLI drives the device through the edge command-line binary kept in
// the data directory, the same way the original backend shelled out to it.
type EdgeCLI struct {
	binPath string
	store   *configstore.Store
	log     *events.Log
}

func NewEdgeCLI(dataDir string, store *configstore.Store, log *events.Log) *EdgeCLI {
	return &EdgeCLI{
		binPath: filepath.Join(dataDir, "edge"),
		store:   store,
		log:     log,
	}
}

func (c *EdgeCLI) StartDevice(checkLatestBinary bool) bool {
	if checkLatestBinary {
		// A failed update is not fatal; the current binary can still start.
		if _, ok := c.run("update"); !ok {
			c.log.Append("Could not update the edge binary, starting the current version.")
		}
	}
	_, ok := c.run("device start")
	return ok
}

func (c *EdgeCLI) SetStakeID(stakeID string) bool {
	if err := c.store.Set(keyStakeID, stakeID); err != nil {
		c.log.Append("Could not persist stake id: " + err.Error())
		return false
	}
	return true
}

func (c *EdgeCLI) run(cliCommand string) (string, bool) {
	c.log.Append("Invoking command in Edge CLI: " + cliCommand)

	cmd := exec.Command(c.binPath, strings.Split(cliCommand, " ")...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		c.log.Append("Edge CLI command " + cliCommand + " failed: " + err.Error())
		return string(out), false
	}
	return string(out), true
}
