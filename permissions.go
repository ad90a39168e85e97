package console

// PermissionPolicy selects how the resolver treats the admin role.
type PermissionPolicy string

const (
	// PolicyAdminBypass grants admins every page regardless of their
	// permission map.
	PolicyAdminBypass PermissionPolicy = "admin_bypass"
	// PolicyStrict evaluates admins against their permission map like
	// any other role.
	PolicyStrict PermissionPolicy = "strict"
)

// Resolver answers page-access questions for a profile. It is
// stateless; the profile is passed per call so the resolver can serve
// any session.
type Resolver struct {
	policy  PermissionPolicy
	catalog []PageDescriptor
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithPolicy selects the admin evaluation policy.
func WithPolicy(policy PermissionPolicy) ResolverOption {
	return func(r *Resolver) {
		if policy != "" {
			r.policy = policy
		}
	}
}

// WithCatalog replaces the default page catalog.
func WithCatalog(pages []PageDescriptor) ResolverOption {
	return func(r *Resolver) {
		if len(pages) > 0 {
			r.catalog = pages
		}
	}
}

// NewResolver returns a resolver with the default catalog and the
// admin-bypass policy.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		policy:  PolicyAdminBypass,
		catalog: DefaultPages(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HasPermission reports whether the profile may access the page. The
// rules apply in order:
//
//  1. nil profile: denied. Unauthenticated visitors see nothing.
//  2. admin role (under PolicyAdminBypass): granted.
//  3. empty permission map: dashboard only. A freshly provisioned
//     account always has a landing page.
//  4. otherwise: strict map lookup; absent keys deny.
func (r *Resolver) HasPermission(profile *Profile, page PageID) bool {
	if profile == nil {
		return false
	}

	if r.policy == PolicyAdminBypass && profile.IsAdmin() {
		return true
	}

	if len(profile.Permissions) == 0 {
		return page == PageDashboard
	}

	return profile.Permissions[page]
}

// AvailablePages returns the catalog pages the profile may access,
// preserving catalog order so navigation renders deterministically.
func (r *Resolver) AvailablePages(profile *Profile) []PageDescriptor {
	var out []PageDescriptor
	for _, page := range r.catalog {
		if r.HasPermission(profile, page.ID) {
			out = append(out, page)
		}
	}
	return out
}

// Catalog returns the resolver's page catalog.
func (r *Resolver) Catalog() []PageDescriptor {
	out := make([]PageDescriptor, len(r.catalog))
	copy(out, r.catalog)
	return out
}
