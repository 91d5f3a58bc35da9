// Command bnsaweb serves a sprite archive over HTTP.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-bnsa/paths"
	"badc0de.net/pkg/go-bnsa/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for bnsaweb")
	debug         = flag.Bool("debug", false, "whether to serve request traces under /debug/")

	bnsaPath string
)

func setupFilePathFlags() {
	paths.SetupFilePathFlag("default.bnsa", "bnsa", &bnsaPath)
}

func main() {
	setupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if bnsaPath == "" {
		glog.Exitf("no archive given; pass -bnsa or put default.bnsa into $%s", paths.DataEnv)
	}
	h, err := web.NewHandler(bnsaPath)
	if err != nil {
		glog.Exitf("%v", err)
	}

	r := mux.NewRouter()
	h.RegisterRoutes(r)
	if *debug {
		// golang.org/x/net/trace registers its pages on the default mux.
		r.PathPrefix("/debug/").Handler(http.DefaultServeMux)
	}

	glog.Infof("serving %s on %s", bnsaPath, *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.CombinedLoggingHandler(os.Stderr, handlers.CompressHandler(r))))
}
