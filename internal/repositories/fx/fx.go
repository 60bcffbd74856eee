package fx

import (
	"github.com/orwa-kh/syria-post-watch/internal/repositories/failedpost"
	"go.uber.org/fx"
)

var Module = fx.Options(
	failedpost.Module,
)
