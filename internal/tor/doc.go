// Package tor sends breach lookups through the Tor network.
//
// Even with k-anonymity the range API learns the caller's IP address and
// the hash prefix they asked for. Routing the request through Tor hides
// the address. Either point Client at an existing SOCKS5 proxy
// (usually 127.0.0.1:9050) or start a private daemon with EmbeddedTor,
// which uses tornago to manage the tor process.
//
//	c, err := tor.NewClient("127.0.0.1:9050", 30*time.Second)
//	if err != nil { ... }
//	if err := c.CheckConnection(ctx).Err(); err != nil { ... }
//	lookup := breach.NewClient(c.NewHTTPClient())
package tor
