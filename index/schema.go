package index

// Namespace of the repository XML document.
const Namespace = `http://www.osgi.org/xmlns/repository/v1.0.0`

const (
	ElementRepository  = `repository`
	ElementResource    = `resource`
	ElementCapability  = `capability`
	ElementRequirement = `requirement`
	ElementAttribute   = `attribute`
	ElementDirective   = `directive`
)

// Capability and requirement namespaces.
const (
	NamespaceIdentity      = `osgi.identity`
	NamespaceContent       = `osgi.content`
	NamespaceWiringBundle  = `osgi.wiring.bundle`
	NamespaceWiringHost    = `osgi.wiring.host`
	NamespaceWiringPackage = `osgi.wiring.package`
	NamespaceMaven         = `maven.coordinates`
)

// Well known attribute and directive names.
const (
	AttributeVersion       = `version`
	AttributeBundleVersion = `bundle-version`
	AttributeType          = `type`
	AttributeURL           = `url`
	AttributeSize          = `size`
	AttributeMime          = `mime`
	AttributeSymbolicName  = `bundle-symbolic-name`
	DirectiveFilter        = `filter`
	DirectiveResolution    = `resolution`
	DirectiveSingleton     = `singleton`
	DirectiveEffective     = `effective`
	DirectiveUses          = `uses`
)

const (
	IdentityTypeBundle   = `osgi.bundle`
	IdentityTypeFragment = `osgi.fragment`
	MimeBundle           = `application/vnd.osgi.bundle`
)
