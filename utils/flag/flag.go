package flag

import "flag"

var (
	ServiceName = flag.String("service", "microblog_server", "name of the service instance, used in logs")
)

func ParseFlags() {
	flag.Parse()
}
