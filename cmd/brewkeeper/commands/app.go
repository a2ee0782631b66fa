package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brewkeeper/brewkeeper/internal/config"
	"github.com/brewkeeper/brewkeeper/internal/database"
	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/internal/inventory"
	"github.com/brewkeeper/brewkeeper/internal/preferences"
	"github.com/brewkeeper/brewkeeper/internal/recipes"
	"github.com/brewkeeper/brewkeeper/internal/session"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// app is the dependency graph shared by subcommands.
type app struct {
	settings  *config.Settings
	log       zerolog.Logger
	db        *database.DB
	parser    *config.InputParser
	itemRepo  *inventory.Repository
	items     *inventory.Service
	recipes   *recipes.Service
	prefs     *preferences.Store
	sessions  *session.Store
	filePrefs domain.Preferences
}

func newApp(settings *config.Settings, log zerolog.Logger) (*app, error) {
	if err := settings.EnsureDataDir(); err != nil {
		return nil, err
	}
	parser := config.NewInputParser()
	filePrefs, err := parser.LoadOrDefault(settings.PrefsPath)
	if err != nil {
		return nil, err
	}

	db, err := database.New(database.Config{Path: settings.DBPath, Name: "brewkeeper"}, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	itemRepo := inventory.NewRepository(db.Conn(), log)
	items := inventory.NewService(itemRepo)
	items.SetLogger(log)
	recipeSvc := recipes.NewService(recipes.NewRepository(db.Conn(), log), itemRepo)
	recipeSvc.SetLogger(log)

	a := &app{
		settings:  settings,
		log:       log,
		db:        db,
		parser:    parser,
		itemRepo:  itemRepo,
		items:     items,
		recipes:   recipeSvc,
		sessions:  session.NewStore(settings.DataDir),
		filePrefs: filePrefs,
	}
	a.prefs = preferences.NewStore(db.Conn(), func() domain.Preferences { return a.filePrefs }, log)
	return a, nil
}

func (a *app) close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// currentUser returns the logged-in username, or "" when nobody is logged in.
func (a *app) currentUser() (string, error) {
	sess, err := a.sessions.Load()
	if errors.Is(err, session.ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sess.Username, nil
}

// preferences resolves the display preferences for this invocation.
func (a *app) preferences(ctx context.Context) (domain.Preferences, error) {
	prefs := a.filePrefs.WithDefaults()
	user, err := a.currentUser()
	if err != nil {
		return prefs, err
	}
	if user != "" {
		if prefs, err = a.prefs.Get(ctx, user); err != nil {
			return prefs, err
		}
	}
	return applyOverrides(prefs)
}

// applyOverrides applies the --weight-unit, --volume-unit and --color-scale flags.
func applyOverrides(prefs domain.Preferences) (domain.Preferences, error) {
	if weightFlag != "" {
		u, err := units.ParseWeightUnit(weightFlag)
		if err != nil {
			return prefs, err
		}
		prefs.WeightUnit = u
	}
	if volumeFlag != "" {
		u, err := units.ParseVolumeUnit(volumeFlag)
		if err != nil {
			return prefs, err
		}
		prefs.VolumeUnit = u
	}
	if colorFlag != "" {
		c, err := units.ParseColorScale(colorFlag)
		if err != nil {
			return prefs, fmt.Errorf("--color-scale: %w", err)
		}
		prefs.ColorScale = c
	}
	return prefs, nil
}
