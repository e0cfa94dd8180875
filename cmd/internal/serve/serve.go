package serve

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"

	"github.com/google/subcommands"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"

	"github.com/sslteam/stp/conf"
	"github.com/sslteam/stp/logs"
	"github.com/sslteam/stp/rpc"
	"github.com/sslteam/stp/stp"
)

type Command struct {
	port     int
	maxConns int
	config   string
	db       string
	debug    int
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve Strategy RPCs via GRPC" }
func (*Command) Usage() string {
	return `serve
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.port, "port", 55431, "bind port")
	flags.IntVar(&c.maxConns, "max-conns", 16, "maximum concurrent connections (0 for no limit)")
	flags.StringVar(&c.config, "config", "", "JSON config file")
	flags.StringVar(&c.db, "db", "", "record simulated plays to this sqlite database")
	flags.IntVar(&c.debug, "debug", 1, "debug level")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	srv := &rpc.Server{Config: stp.DefaultConfig(), Debug: c.debug}
	if c.config != "" {
		if err := conf.Load(c.config, &srv.Config); err != nil {
			log.Printf("config: %v", err)
			return subcommands.ExitUsageError
		}
	}
	if c.db != "" {
		repo, err := logs.Open(c.db)
		if err != nil {
			log.Printf("open %q: %v", c.db, err)
			return subcommands.ExitFailure
		}
		defer repo.Close()
		srv.Recorders = repo.Recorder
	}

	log.Printf("Listening on port %d", c.port)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		log.Printf("failed to listen: %v", err)
		return subcommands.ExitFailure
	}
	if c.maxConns > 0 {
		lis = netutil.LimitListener(lis, c.maxConns)
	}
	grpcServer := grpc.NewServer()
	rpc.RegisterStrategyServer(grpcServer, srv)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()
	if err := grpcServer.Serve(lis); err != nil {
		log.Printf("serve: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
