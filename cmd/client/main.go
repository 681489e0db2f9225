// 命令行调试客户端：连接服务器后从标准输入读取命令并打印收到的消息。
//
// 支持的命令:
//
//	create <name> [private]     创建房间
//	join <code> <name>          加入房间
//	leave                       离开房间
//	move <x> <y>                移动
//	chat <text>                 发送聊天
//	interact <objectId> [type]  交互
//	start / reset               开始 / 重置游戏
//	door <doorId> <open|close>  门状态变更
//	rooms / online / ping       大厅查询与心跳
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/escapetogether/escape-together/internal/protocol"
)

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "服务器地址")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		log.Fatalf("连接失败: %v", err)
	}
	defer conn.Close()

	fmt.Printf("已连接 %s，输入 help 查看命令\n", *addr)

	// 打印服务器推送
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				fmt.Printf("连接已断开: %v\n", err)
				os.Exit(0)
			}
			printMessage(data)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		msg, err := buildMessage(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if msg == nil {
			continue // help 等本地命令
		}

		data, err := msg.Encode()
		if err != nil {
			fmt.Printf("编码失败: %v\n", err)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Fatalf("发送失败: %v", err)
		}
	}
}

// buildMessage 把一行命令转换成协议消息
func buildMessage(line string) (*protocol.Message, error) {
	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		fmt.Println("create/join/leave/move/chat/interact/start/reset/door/rooms/online/ping/quit")
		return nil, nil

	case "quit", "exit":
		os.Exit(0)
		return nil, nil

	case "create":
		if len(args) < 1 {
			return nil, fmt.Errorf("用法: create <name> [private]")
		}
		return protocol.NewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
			PlayerName: args[0],
			IsPrivate:  len(args) > 1 && args[1] == "private",
		})

	case "join":
		if len(args) < 2 {
			return nil, fmt.Errorf("用法: join <code> <name>")
		}
		return protocol.NewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
			RoomCode:   args[0],
			PlayerName: args[1],
		})

	case "leave":
		return protocol.NewMessage(protocol.MsgLeaveRoom, nil)

	case "move":
		if len(args) < 2 {
			return nil, fmt.Errorf("用法: move <x> <y>")
		}
		x, err1 := strconv.ParseFloat(args[0], 64)
		y, err2 := strconv.ParseFloat(args[1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("坐标必须是数字")
		}
		return protocol.NewMessage(protocol.MsgPlayerMove, protocol.PlayerMovePayload{
			Position: &protocol.Position{X: x, Y: y},
		})

	case "chat":
		if len(args) < 1 {
			return nil, fmt.Errorf("用法: chat <text>")
		}
		return protocol.NewMessage(protocol.MsgChatMessage, protocol.ChatMessagePayload{
			Message: strings.Join(args, " "),
		})

	case "interact":
		if len(args) < 1 {
			return nil, fmt.Errorf("用法: interact <objectId> [type]")
		}
		// 服务端要求交互类型非空，省略时默认 use
		payload := protocol.PlayerInteractPayload{ObjectID: args[0], InteractionType: "use"}
		if len(args) > 1 {
			payload.InteractionType = args[1]
		}
		return protocol.NewMessage(protocol.MsgPlayerInteract, payload)

	case "start":
		return protocol.NewMessage(protocol.MsgGameStart, nil)

	case "reset":
		return protocol.NewMessage(protocol.MsgGameReset, nil)

	case "door":
		if len(args) < 2 {
			return nil, fmt.Errorf("用法: door <doorId> <open|close>")
		}
		return protocol.NewMessage(protocol.MsgDoorStateChange, protocol.DoorStateChangePayload{
			DoorID: args[0],
			IsOpen: args[1] == "open",
		})

	case "rooms":
		return protocol.NewMessage(protocol.MsgGetRoomList, nil)

	case "online":
		return protocol.NewMessage(protocol.MsgGetOnlineCount, nil)

	case "ping":
		return protocol.NewMessage(protocol.MsgPing, nil)

	default:
		return nil, fmt.Errorf("未知命令: %s", cmd)
	}
}

// printMessage 以易读格式打印服务器消息
func printMessage(data []byte) {
	msg, err := protocol.Decode(data)
	if err != nil {
		fmt.Printf("<< %s\n", data)
		return
	}

	if msg.Type == protocol.MsgError {
		fmt.Printf("<< [error] %s\n", msg.Message)
		return
	}
	fmt.Printf("<< [%s] %s\n", msg.Type, msg.Data)
}
