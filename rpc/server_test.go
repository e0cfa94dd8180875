package rpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sslteam/stp/logs"
	"github.com/sslteam/stp/stp"
	"github.com/sslteam/stp/world"
)

func dial(t *testing.T, srv StrategyServer) *Client {
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterStrategyServer(s, srv)
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestRatePass(t *testing.T) {
	c := dial(t, &Server{Config: stp.DefaultConfig()})
	ctx := context.Background()

	good, err := c.RatePass(ctx, mustStruct(t, map[string]interface{}{
		"seed": 3, "pos_y": true,
		"receiver_x": 2.5, "receiver_y": -0.5, "speed": 4.0, "delay": 0.5,
	}))
	require.NoError(t, err)
	r := good.GetFields()["rating"].GetNumberValue()
	assert.GreaterOrEqual(t, r, 0.0)
	assert.LessOrEqual(t, r, 1.0)

	// A pass straight out of the field is worthless.
	bad, err := c.RatePass(ctx, mustStruct(t, map[string]interface{}{
		"seed": 3, "pos_y": true,
		"receiver_x": 4.5, "receiver_y": 5.0, "speed": 4.0,
	}))
	require.NoError(t, err)
	assert.Less(t, bad.GetFields()["rating"].GetNumberValue(), 0.01)
}

func TestRatePassErrors(t *testing.T) {
	c := dial(t, &Server{Config: stp.DefaultConfig()})
	ctx := context.Background()

	_, err := c.RatePass(ctx, mustStruct(t, map[string]interface{}{"receiver_x": 1.0}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.RatePass(ctx, mustStruct(t, map[string]interface{}{
		"receiver_x": 1.0, "receiver_y": 1.0, "speed": 3.0, "type": "lob",
	}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSimulate(t *testing.T) {
	cfg := stp.DefaultConfig()
	cfg.Play.Pass.TimeBudget = 0
	c := dial(t, &Server{Config: cfg})

	out, err := c.Simulate(context.Background(), mustStruct(t, map[string]interface{}{
		"seed": 7, "pos_y": false,
	}))
	require.NoError(t, err)
	fs := out.GetFields()
	assert.Contains(t, []string{"finished", "abandoned"}, fs["outcome"].GetStringValue())
	assert.Greater(t, fs["ticks"].GetNumberValue(), 0.0)
	if p, ok := fs["pass"]; ok {
		rating := p.GetStructValue().GetFields()["rating"].GetNumberValue()
		assert.GreaterOrEqual(t, rating, 0.0)
		assert.LessOrEqual(t, rating, 1.0)
	}
}

func TestSimulateRecordsEachGameSeparately(t *testing.T) {
	repo, err := logs.Open(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	cfg := stp.DefaultConfig()
	cfg.Play.Pass.TimeBudget = 0
	c := dial(t, &Server{Config: cfg, Recorders: repo.Recorder})

	seeds := []int{7, 8, 9}
	outs := make([]*structpb.Struct, len(seeds))
	var grp errgroup.Group
	for i, seed := range seeds {
		i := i
		req := mustStruct(t, map[string]interface{}{"seed": seed, "pos_y": i%2 == 0})
		grp.Go(func() error {
			out, err := c.Simulate(context.Background(), req)
			outs[i] = out
			return err
		})
	}
	require.NoError(t, grp.Wait())

	plays, err := repo.Plays("")
	require.NoError(t, err)
	byRun := map[string][]logs.Play{}
	for _, p := range plays {
		byRun[p.Run] = append(byRun[p.Run], p)
	}

	seen := map[string]bool{}
	for _, out := range outs {
		fs := out.GetFields()
		run := fs["run"].GetStringValue()
		require.NotEmpty(t, run)
		assert.False(t, seen[run], "run %q reused", run)
		seen[run] = true

		rows := byRun[run]
		require.NotEmpty(t, rows, "run %q", run)
		last := rows[len(rows)-1]
		require.True(t, last.Ended.Valid)
		assert.Equal(t, fs["outcome"].GetStringValue(), last.Outcome.String)
		assert.InDelta(t, fs["ended"].GetNumberValue(), world.Timestamp(last.Ended.Int64).Seconds(), 1e-9)

		passes, err := repo.Passes(run)
		require.NoError(t, err)
		_, committed := fs["pass"]
		if committed {
			require.NotEmpty(t, passes)
			rating := fs["pass"].GetStructValue().GetFields()["rating"].GetNumberValue()
			assert.Equal(t, rating, passes[len(passes)-1].Rating)
		} else {
			assert.Empty(t, passes)
		}
	}
	assert.Len(t, byRun, len(seeds))
}
