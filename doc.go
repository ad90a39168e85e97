// Package console provides the session and permission core for the
// event-management admin console: credential storage, access/refresh
// token lifecycle, sign-in/sign-up/sign-out flows, and page-level
// permission resolution.
//
// Session lifecycle:
//   - SessionContext is the single source of truth for "who is logged
//     in". It moves through anonymous, authenticating, and
//     authenticated states via an explicit transition map, persists
//     Credential and Profile through a Store, and exposes auth
//     operations that return errors as values so callers can render
//     them inline.
//   - TokenLifecycle owns the persisted access/refresh token pair. Any
//     ambiguity about token validity (missing segments, undecodable
//     payload, absent exp claim) is treated as expired; access is never
//     granted on a decode failure.
//
// Permissions:
//   - Resolver answers "may this principal see page X" as a pure
//     function of the Profile. Admin accounts bypass the per-page map
//     by default; PolicyStrict subjects them to the same map as
//     everyone else.
//
// Stores:
//   - The persisted state is a small string key/value namespace (user,
//     profile, tokens, language, translation overrides). MemoryStore,
//     BunStore (sqlite), and KeyringStore (OS keychain) all satisfy the
//     same Store interface.
package console
