package repository

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

var _ AdminRepository = &AdminFileRepository{}

// AdminEntry is one operator account from the admins file. The password
// is either a bcrypt hash or, for local setups, plain text.
type AdminEntry struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// AdminFileRepository keeps the operator accounts that guard the admin
// endpoints. The file is reloaded on change.
type AdminFileRepository struct {
	adminFile string
	logger    *slog.Logger
	admins    map[string]*AdminEntry

	watcher *fsnotify.Watcher

	mx sync.RWMutex
}

func NewFileAdminRepo(adminFile string) *AdminFileRepository {
	r := &AdminFileRepository{
		logger:    slog.Default().With("logger", "AdminManager"),
		adminFile: adminFile,
		admins:    make(map[string]*AdminEntry),
		mx:        sync.RWMutex{},
	}

	if err := r.loadFile(); err != nil {
		r.logger.Error("error loading admins file", slog.Any("error", err))
	}

	return r
}

func (r *AdminFileRepository) loadFile() error {
	r.mx.Lock()
	defer r.mx.Unlock()

	if _, err := os.Lstat(r.adminFile); os.IsNotExist(err) {
		// create empty file
		f, err := os.Create(r.adminFile)
		if err != nil {
			return err
		}

		return f.Close()
	}

	dat, err := os.ReadFile(r.adminFile)
	if err != nil {
		return err
	}

	admins := make([]*AdminEntry, 0)

	if err := yaml.Unmarshal(dat, &admins); err != nil {
		return err
	}

	r.admins = make(map[string]*AdminEntry)

	for _, a := range admins {
		if a.Login != "" {
			r.admins[a.Login] = a
		}
	}

	return nil
}

func (r *AdminFileRepository) Start() error {
	var err error
	r.watcher, err = fsnotify.NewWatcher()

	if err != nil {
		return err
	}

	if err := r.watcher.Add(r.adminFile); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-r.watcher.Events:
				if !ok {
					return
				}

				r.logger.Debug(fmt.Sprintf("event: %v", event))

				if event.Has(fsnotify.Write) && event.Name == r.adminFile {
					r.logger.Info("admins file is modified, reloading")

					if err := r.loadFile(); err != nil {
						r.logger.Error("error", slog.Any("error", err))
					}
				}
			case err, ok := <-r.watcher.Errors:
				if !ok {
					return
				}

				r.logger.Error("error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

func (r *AdminFileRepository) Stop() {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
}

func (r *AdminFileRepository) IsEmpty() bool {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return len(r.admins) == 0
}

func (r *AdminFileRepository) CheckAuth(login, password string) bool {
	r.mx.RLock()
	defer r.mx.RUnlock()

	a, ok := r.admins[login]
	if !ok || a.Disabled {
		return false
	}

	if strings.HasPrefix(a.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) == 1
}
