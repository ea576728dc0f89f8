// Command graphiql hosts the GraphiQL explorer for a GraphQL endpoint.
//
// The explorer is delivered as three assets below the GraphiQL URL: an HTML page, one
// JavaScript bundle and one stylesheet. Each asset is assembled on request from
// vendored npm packages (jquery, whatwg-fetch, react, react-dom and graphiql) and
// local files. The bundle ends with a bootstrap script that wires GraphiQL to the
// configured GraphQL and login endpoints.
//
// Use the package pkg/graphiql to mount the explorer on your own http.ServeMux, or run
//
//	graphiql serve --graphqlFetchURL /api/graphql
//
// to host it standalone. Vendored packages are looked up in node_modules, see
// hack/fetch-assets.sh for installing them.
package main
