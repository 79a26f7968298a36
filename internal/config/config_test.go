package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"cardroom-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("CARDROOM_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("CARDROOM_ANTE", "2.5")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal(2.5, cfg.Ante)
	a.Equal(100.0, cfg.StartingBalance)
	a.Equal("cardroom", cfg.SessionCookie)

	// ensure that it's only loaded once
	_ = os.Setenv("CARDROOM_ANTE", "9")
	// ensure we aren't using a pointer
	cfg.Ante = 0
	cfg = Instance()
	a.Equal(2.5, cfg.Ante)
}

func TestDefaults(t *testing.T) {
	clear1 := util.SetEnv("CARDROOM_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, 5.0, cfg.Ante)
	assert.Equal(t, 20.0, cfg.StartingBalance)
	assert.Equal(t, 5, cfg.DeckLowWater)
	assert.Equal(t, "SESSION", cfg.SessionCookie)
}
