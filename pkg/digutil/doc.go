// Package digutil provides helpers for working with Uber's dig dependency
// injection library.
//
// The SDK wires applications through a dig container: constructors get
// registered with Provide, workers with [runutil.ProvideWorker] and handlers
// with [webutil.ProvideHandler]. This package fills two gaps in plain dig.
//
// # Providing Values
//
// Configuration that is already constructed, like flag values or clients
// built during startup, goes into the container with ProvideValue:
//
//	c := dig.New()
//
//	err := errors.Join(
//	    digutil.ProvideValue(c, webutil.ListenAddress(":8080")),
//	    digutil.ProvideValue(c, redisutil.Prefix("my-app")),
//	)
//
// # Optional Dependencies
//
// Dependencies that are only present in some configurations, like a Vault
// manager that requires credentials, are declared with Optional. The
// constructor decides what to do when the value is missing:
//
//	func NewTokenSource(vault digutil.Optional[vaultutil.Manager]) TokenSource {
//	    if vault.Value == nil {
//	        return anonymousTokenSource{}
//	    }
//
//	    return vaultTokenSource{manager: vault.Value}
//	}
package digutil
