package container

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/userboard/userboard/config"
	"github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/domain/repository"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg      *config.Config
	logger   *logrus.Logger
	repo     repository.UserRepository
	fetcher  application.UserFetcher
	validate *validator.Validate
	service  *application.Service
)

func SetConfig(c *config.Config)                { cfg = c }
func GetConfig() *config.Config                 { return cfg }
func SetLogger(l *logrus.Logger)                { logger = l }
func GetLogger() *logrus.Logger                 { return logger }
func SetRepo(r repository.UserRepository)       { repo = r }
func GetRepo() repository.UserRepository        { return repo }
func SetFetcher(f application.UserFetcher)      { fetcher = f }
func GetFetcher() application.UserFetcher       { return fetcher }
func SetValidator(v *validator.Validate)        { validate = v }
func GetValidator() *validator.Validate         { return validate }
func SetService(s *application.Service)         { service = s }
func GetService() *application.Service          { return service }
