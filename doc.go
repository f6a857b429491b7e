// Package wlsrest is a client for the WebLogic Server REST management API.
//
// The API is hypermedia driven: every resource document carries "links" to
// related resources and actions, and collections carry "items". The client
// needs only the server address. New fetches the root resource and exposes
// its links, and from there every resource is an *Object whose members are
// discovered from the server on demand.
//
//	c, err := wlsrest.New(ctx, wlsrest.Config{
//		Host:     "https://wls.example.com:7002",
//		Username: "weblogic",
//		Password: "Welcome1",
//	})
//	if err != nil {
//		return err
//	}
//
//	runtime, _ := c.Link("domainRuntime")
//	servers, err := runtime.Path(ctx, "serverLifeCycleRuntimes")
//	if err != nil {
//		return err
//	}
//	items, err := servers.Items(ctx)
//	if err != nil {
//		return err
//	}
//	for server := range items.All() {
//		state, err := server.Value(ctx, "state")
//		...
//	}
//
// Actions are members too:
//
//	shutdown, err := server.Action(ctx, "shutdown")
//	job, err := shutdown.Call(ctx, true, map[string]any{"timeout": 60})
//
// Non-success responses are returned as *Error and match one of the
// ErrBadRequest ... ErrUnknownStatus sentinels with errors.Is. Transport
// failures, timeouts included, are returned exactly as the transport
// reported them.
package wlsrest
