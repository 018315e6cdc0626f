package zmq

import (
	"FragFS/internal/application/service"
	"FragFS/internal/platform/config"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-zeromq/zmq4"
	json "github.com/json-iterator/go"
)

// ZmqApi serves the store operations over a ZeroMQ REP socket. Requests are
// handled one at a time, in arrival order.
type ZmqApi struct {
	socket   zmq4.Socket
	config   config.Config
	services *Services
	ctx      context.Context
	cancel   context.CancelFunc
}

type Services struct {
	create  *service.CreateFileService
	delete  *service.DeleteFileService
	resize  *service.ResizeFileService
	defrag  *service.DefragmentService
	wipe    *service.WipeService
	restore *service.RestoreService
	layout  *service.GetLayoutService
}

const (
	CREATE     = "CREATE"
	DELETE     = "DELETE"
	RESIZE     = "RESIZE"
	DEFRAGMENT = "DEFRAGMENT"
	WIPE       = "WIPE"
	RESTORE    = "RESTORE"
	LAYOUT     = "LAYOUT"
	FILE       = "FILE"
)

func NewZmqApi(create *service.CreateFileService, delete *service.DeleteFileService,
	resize *service.ResizeFileService, defrag *service.DefragmentService,
	wipe *service.WipeService, restore *service.RestoreService,
	layout *service.GetLayoutService, conf config.Config) *ZmqApi {

	ctx, cancel := context.WithCancel(context.Background())
	return &ZmqApi{
		socket: zmq4.NewRep(ctx),
		config: conf,
		services: &Services{
			create:  create,
			delete:  delete,
			resize:  resize,
			defrag:  defrag,
			wipe:    wipe,
			restore: restore,
			layout:  layout,
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

func (z *ZmqApi) Listen() error {
	address := fmt.Sprintf("tcp://*:%d", z.config.ZmqApiPort)
	if err := z.socket.Listen(address); err != nil {
		return fmt.Errorf("zmq api listen on %s: %w", address, err)
	}
	log.Printf("ZMQ API listening on %s", address)

	for {
		msg, err := z.socket.Recv()
		if err != nil {
			if errors.Is(err, zmq4.ErrClosedConn) || z.ctx.Err() != nil {
				log.Println("ZMQ API stopped")
				return nil
			}
			log.Printf("ZMQ API recv error: %v", err)
			continue
		}

		var response ApiResponse
		var req ApiRequest
		if err := json.Unmarshal(msg.Bytes(), &req); err != nil {
			log.Printf("ZMQ API unmarshal error: %v", err)
			response = ApiResponse{Error: "malformed request"}
		} else {
			response = z.safeProcess(&req)
		}
		if err := z.socket.Send(z.marshal(response)); err != nil {
			log.Printf("ZMQ API send error: %v", err)
		}
	}
}

// safeProcess answers a request that panicked with an error instead of
// taking the listener down with it.
func (z *ZmqApi) safeProcess(req *ApiRequest) (response ApiResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ZMQ API panic on %s %q: %v", req.Action, req.Name, r)
			response = ApiResponse{Error: fmt.Sprintf("internal error handling %s", req.Action)}
		}
	}()
	return z.processRequest(req)
}

func (z *ZmqApi) processRequest(req *ApiRequest) ApiResponse {
	switch req.Action {
	case CREATE:
		result := z.services.create.Execute(service.CreateFileCommand{Name: req.Name, Size: req.Size})
		if result.Err != nil {
			return failure(result.Err)
		}
		return ApiResponse{Success: true, Blocks: result.Blocks, Count: len(result.Blocks)}

	case DELETE:
		result := z.services.delete.Execute(service.DeleteFileCommand{Name: req.Name})
		if result.Err != nil {
			return failure(result.Err)
		}
		return ApiResponse{Success: true, Count: result.Freed}

	case RESIZE:
		result := z.services.resize.Execute(service.ResizeFileCommand{Name: req.Name, Size: req.Size})
		if result.Err != nil {
			return failure(result.Err)
		}
		return ApiResponse{Success: true, Count: result.BlockCount}

	case DEFRAGMENT:
		result := z.services.defrag.Execute()
		if result.Err != nil {
			return failure(result.Err)
		}
		return ApiResponse{Success: true, Layout: &result.Layout}

	case WIPE:
		layout := z.services.wipe.Execute()
		return ApiResponse{Success: true, Layout: &layout}

	case RESTORE:
		result := z.services.restore.Execute()
		if result.Err != nil {
			return failure(result.Err)
		}
		return ApiResponse{Success: true, Layout: &result.Layout}

	case LAYOUT:
		layout := z.services.layout.Execute()
		return ApiResponse{Success: true, Layout: &layout}

	case FILE:
		result := z.services.layout.GetFile(service.GetFileQuery{Name: req.Name})
		if !result.Found {
			return ApiResponse{Error: fmt.Sprintf("file %q not found", req.Name)}
		}
		return ApiResponse{Success: true, File: &result.File}

	default:
		log.Printf("Unknown action: %s", req.Action)
		return ApiResponse{Error: fmt.Sprintf("unknown action %q", req.Action)}
	}
}

func failure(err error) ApiResponse {
	return ApiResponse{Success: false, Error: err.Error()}
}

func (z *ZmqApi) marshal(response ApiResponse) zmq4.Msg {
	payload, err := json.Marshal(response)
	if err != nil {
		log.Printf("Error marshalling response: %v", err)
		payload = []byte(`{"success":false}`)
	}
	return zmq4.NewMsg(payload)
}

func (z *ZmqApi) Close() error {
	z.cancel()
	return z.socket.Close()
}
