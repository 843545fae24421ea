// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ method/path
patterns.

Every API route is wrapped in request logging and participant resolution;
authorization gate chains run inside the handlers. Health and root endpoints
are unauthenticated.
*/
package router
