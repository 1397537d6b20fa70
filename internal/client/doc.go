// Package client assembles the headbase client from its parts: transport,
// session, encrypted pipeline, local document and background sync, all
// configured from [config.ClientConfig].
package client
