// Package registry provides access to the star component catalog.
//
// Components are distributed as source code that developers copy into their
// projects and own completely. A catalog is a manifest plus one source file
// per component, laid out the same way on every backend:
//
//	manifest.json
//	components/<name>.py
//
// # Registry Manifest
//
//	{
//	  "manifestVersion": 1,
//	  "version": "0.4.0",
//	  "components": {
//	    "dialog": {
//	      "description": "Modal dialog built on the native dialog element",
//	      "dependencies": ["button", "utils"],
//	      "packages": [],
//	      "cssImports": []
//	    }
//	  }
//	}
//
// # Backends
//
//   - Embedded: the catalog compiled into the binary (default)
//   - NewFS: any fs.FS, including a local directory via Open("file:///path")
//   - NewHTTP: a static site or `star registry serve`
//   - NewS3: an S3 bucket and key prefix
//
// All of them are wrapped by Catalog, which fetches and validates the
// manifest once per value and maps failures onto the E243/E244/E248 codes.
//
// # Usage
//
//	client, err := registry.Open(ctx, "https://ui.example.com/registry")
//	names, err := client.List(ctx)
//	src, err := client.Source(ctx, "button")
package registry
