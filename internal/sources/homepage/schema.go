package homepage

// ServicesConfig is the root of services.yaml:
//
//	- Group:
//	    - Service Name:
//	        href: https://...
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps keeps the service fields a link can be built from
type ServiceProps struct {
	Href        string `yaml:"href"`
	Icon        string `yaml:"icon,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// BookmarksConfig is the root of bookmarks.yaml. Each bookmark name maps
// to a one-element list holding its properties:
//
//	- Group:
//	    - Bookmark Name:
//	        - abbr: BN
//	          href: https://...
type BookmarksConfig []map[string][]map[string][]BookmarkEntry

// BookmarkEntry is one bookmark's properties
type BookmarkEntry struct {
	Abbr string `yaml:"abbr"`
	Href string `yaml:"href"`
	Icon string `yaml:"icon,omitempty"`
}
