package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/lfsadigital/receipt-verifier/internal/app/api/server"
	"github.com/lfsadigital/receipt-verifier/internal/app/service/entitlement"
	"github.com/lfsadigital/receipt-verifier/internal/app/service/verification"
	"github.com/lfsadigital/receipt-verifier/pkg/config"
	"github.com/lfsadigital/receipt-verifier/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	server.Module,
	entitlement.Module,
	verification.Module,
)
